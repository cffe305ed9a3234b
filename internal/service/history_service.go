package service

import (
	"context"
	"sort"

	ordermodel "praxis-cashier-api/internal/model/order"
	"praxis-cashier-api/internal/repo"
)

type HistoryService struct {
	store      repo.OrderStore
	defaultCID string
}

func NewHistoryService(store repo.OrderStore, defaultCID string) *HistoryService {
	return &HistoryService{store: store, defaultCID: defaultCID}
}

// List returns every order of cid, most recent first. No pagination.
func (s *HistoryService) List(ctx context.Context, cid string) ([]ordermodel.OrderRecord, error) {
	if cid == "" {
		cid = s.defaultCID
	}
	orders, err := s.store.ScanByCID(ctx, cid)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp > orders[j].Timestamp
	})
	return orders, nil
}
