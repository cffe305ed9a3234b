package idgen

import (
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestOrderIDGenerator_Format(t *testing.T) {
	g := NewOrderIDGenerator()
	id, at := g.Next()
	if !regexp.MustCompile(`^ord_\d+$`).MatchString(id) {
		t.Fatalf("Next() = %q, want ord_<digits>", id)
	}
	if want := "ord_" + strconv.FormatInt(at.UnixMilli(), 10); id != want {
		t.Fatalf("Next() = %q, want %q", id, want)
	}
}

func TestOrderIDGenerator_SameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000123)
	g := &OrderIDGenerator{now: func() time.Time { return fixed }}

	a, _ := g.Next()
	b, _ := g.Next()
	if a != "ord_1700000000123" || b != "ord_1700000000124" {
		t.Fatalf("Next() = %q, %q", a, b)
	}
}

func TestOrderIDGenerator_Concurrent(t *testing.T) {
	g := NewOrderIDGenerator()
	const n = 500
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := g.Next()
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate order id %s", id)
		}
		seen[id] = true
	}
}

func TestTraceID(t *testing.T) {
	if err := InitNode("default", 1); err != nil {
		t.Fatal(err)
	}
	a, b := TraceID(), TraceID()
	if a == "" || a == b {
		t.Fatalf("TraceID() = %q, %q", a, b)
	}
	if _, err := NewFrom("missing"); err == nil {
		t.Fatal("NewFrom(missing) should fail")
	}
}
