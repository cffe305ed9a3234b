package repo

import (
	"context"
	"sync"

	ordermodel "praxis-cashier-api/internal/model/order"
)

// OrderStore owns every OrderRecord. Implementations must make Update an
// atomic read-modify-write per order id.
type OrderStore interface {
	Put(ctx context.Context, o *ordermodel.OrderRecord) error
	// Get returns nil, nil when the order does not exist.
	Get(ctx context.Context, orderID string) (*ordermodel.OrderRecord, error)
	// Update applies fn to the stored record. It reports false when the order
	// does not exist, in which case fn is not called.
	Update(ctx context.Context, orderID string, fn func(o *ordermodel.OrderRecord)) (bool, error)
	ScanByCID(ctx context.Context, cid string) ([]ordermodel.OrderRecord, error)
}

// MemoryOrderStore keeps records for the lifetime of the process.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]ordermodel.OrderRecord
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]ordermodel.OrderRecord)}
}

func (s *MemoryOrderStore) Put(_ context.Context, o *ordermodel.OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = *o
	return nil
}

func (s *MemoryOrderStore) Get(_ context.Context, orderID string) (*ordermodel.OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *MemoryOrderStore) Update(_ context.Context, orderID string, fn func(o *ordermodel.OrderRecord)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return false, nil
	}
	fn(&o)
	o.OrderID = orderID
	s.orders[orderID] = o
	return true, nil
}

func (s *MemoryOrderStore) ScanByCID(_ context.Context, cid string) ([]ordermodel.OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ordermodel.OrderRecord, 0)
	for _, o := range s.orders {
		if o.CID == cid {
			out = append(out, o)
		}
	}
	return out, nil
}

// Len is the number of stored records.
func (s *MemoryOrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
