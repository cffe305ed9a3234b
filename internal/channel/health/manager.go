package health

import "sync"

// GatewayHealthManager tracks the success rate of cashier calls. It only
// reports; callers are never blocked because of a low rate.
type GatewayHealthManager struct {
	mu        sync.Mutex
	rate      float64
	strategy  SuccessRateStrategy
	threshold float64
}

func NewGatewayHealthManager(strategy SuccessRateStrategy, threshold float64) *GatewayHealthManager {
	return &GatewayHealthManager{rate: 100, strategy: strategy, threshold: threshold}
}

func (m *GatewayHealthManager) Update(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = m.strategy.Update(m.rate, success)
}

// Snapshot returns the current rate and whether it is under the threshold.
func (m *GatewayHealthManager) Snapshot() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate, m.rate < m.threshold
}
