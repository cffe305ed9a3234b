package utils

import (
	"net"
	"strings"
)

// IPAllowed reports whether ip is in the allowlist. Entries are addresses or
// CIDR ranges. An empty allowlist accepts everything.
func IPAllowed(ip string, allowlist []string) bool {
	if len(allowlist) == 0 {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, a := range allowlist {
		a = strings.TrimSpace(a)
		if strings.Contains(a, "/") {
			if _, network, err := net.ParseCIDR(a); err == nil && network.Contains(parsed) {
				return true
			}
			continue
		}
		if allowed := net.ParseIP(a); allowed != nil && allowed.Equal(parsed) {
			return true
		}
	}
	return false
}
