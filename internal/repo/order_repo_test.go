package repo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	ordermodel "praxis-cashier-api/internal/model/order"
)

func runStoreContract(t *testing.T, s OrderStore) {
	ctx := context.Background()

	t.Run("get missing returns nil", func(t *testing.T) {
		o, err := s.Get(ctx, "ord_missing")
		if err != nil || o != nil {
			t.Fatalf("Get() = %v, %v; want nil, nil", o, err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		in := &ordermodel.OrderRecord{OrderID: "ord_1", Amount: 2550, Currency: "USD", Status: ordermodel.StatusPending, Timestamp: 100, CID: "c1"}
		if err := s.Put(ctx, in); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "ord_1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got == nil || *got != *in {
			t.Fatalf("Get() = %+v, want %+v", got, in)
		}
	})

	t.Run("update known", func(t *testing.T) {
		found, err := s.Update(ctx, "ord_1", func(o *ordermodel.OrderRecord) { o.Status = "completed" })
		if err != nil || !found {
			t.Fatalf("Update() = %v, %v", found, err)
		}
		got, _ := s.Get(ctx, "ord_1")
		if got.Status != "completed" || got.Amount != 2550 {
			t.Fatalf("after Update() = %+v", got)
		}
	})

	t.Run("update unknown", func(t *testing.T) {
		called := false
		found, err := s.Update(ctx, "ord_nope", func(o *ordermodel.OrderRecord) { called = true })
		if err != nil || found || called {
			t.Fatalf("Update() = %v, %v, called=%v", found, err, called)
		}
	})

	t.Run("scan by cid filters exactly", func(t *testing.T) {
		_ = s.Put(ctx, &ordermodel.OrderRecord{OrderID: "ord_2", CID: "c1", Timestamp: 200})
		_ = s.Put(ctx, &ordermodel.OrderRecord{OrderID: "ord_3", CID: "c10", Timestamp: 300})
		got, err := s.ScanByCID(ctx, "c1")
		if err != nil {
			t.Fatalf("ScanByCID() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("ScanByCID() returned %d records, want 2: %+v", len(got), got)
		}
		for _, o := range got {
			if o.CID != "c1" {
				t.Errorf("unexpected cid %q", o.CID)
			}
		}
		none, err := s.ScanByCID(ctx, "nobody")
		if err != nil || none == nil || len(none) != 0 {
			t.Fatalf("ScanByCID(nobody) = %v, %v; want empty slice", none, err)
		}
	})
}

func TestMemoryOrderStore(t *testing.T) {
	runStoreContract(t, NewMemoryOrderStore())
}

func TestMemoryOrderStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryOrderStore()
	_ = s.Put(ctx, &ordermodel.OrderRecord{OrderID: "ord_c", CID: "c"})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(ctx, "ord_c", func(o *ordermodel.OrderRecord) { o.Amount++ })
		}()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Put(ctx, &ordermodel.OrderRecord{OrderID: fmt.Sprintf("ord_x%d", i), CID: "c"})
			_, _ = s.ScanByCID(ctx, "c")
		}(i)
	}
	wg.Wait()

	got, _ := s.Get(ctx, "ord_c")
	if got.Amount != 100 {
		t.Fatalf("Amount = %d, want 100 (lost update)", got.Amount)
	}
	if s.Len() != 101 {
		t.Fatalf("Len() = %d, want 101", s.Len())
	}
}

func TestMemoryOrderStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryOrderStore()
	_ = s.Put(ctx, &ordermodel.OrderRecord{OrderID: "ord_1", Status: ordermodel.StatusPending})

	got, _ := s.Get(ctx, "ord_1")
	got.Status = "tampered"

	again, _ := s.Get(ctx, "ord_1")
	if again.Status != ordermodel.StatusPending {
		t.Fatalf("store mutated through returned pointer: %+v", again)
	}
}

// TestRedisOrderStore runs against a live server when REDIS_ADDR is set.
func TestRedisOrderStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	prefix := fmt.Sprintf("praxis-test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		keys, _ := rdb.Keys(context.Background(), prefix+":*").Result()
		if len(keys) > 0 {
			rdb.Del(context.Background(), keys...)
		}
	})
	runStoreContract(t, NewRedisOrderStore(rdb, prefix))
}
