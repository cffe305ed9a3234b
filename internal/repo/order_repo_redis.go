package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	ordermodel "praxis-cashier-api/internal/model/order"
	rediskey "praxis-cashier-api/internal/types/redis-key"
)

const maxWatchAttempts = 5

// RedisOrderStore stores each record as JSON under <prefix>:order:<id> and
// indexes order ids per customer in the set <prefix>:cid:<cid>.
type RedisOrderStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisOrderStore(rdb *redis.Client, prefix string) *RedisOrderStore {
	return &RedisOrderStore{rdb: rdb, prefix: prefix}
}

func (s *RedisOrderStore) orderKey(id string) string { return rediskey.OrderKey(s.prefix, id) }

func (s *RedisOrderStore) cidKey(cid string) string { return rediskey.CIDIndexKey(s.prefix, cid) }

func (s *RedisOrderStore) Put(ctx context.Context, o *ordermodel.OrderRecord) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.OrderID, err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.orderKey(o.OrderID), b, 0)
		p.SAdd(ctx, s.cidKey(o.CID), o.OrderID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put order %s: %w", o.OrderID, err)
	}
	return nil
}

func (s *RedisOrderStore) Get(ctx context.Context, orderID string) (*ordermodel.OrderRecord, error) {
	raw, err := s.rdb.Get(ctx, s.orderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get order %s: %w", orderID, err)
	}
	var o ordermodel.OrderRecord
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return &o, nil
}

// Update uses WATCH/MULTI so a concurrent writer forces a re-read instead of
// a lost update.
func (s *RedisOrderStore) Update(ctx context.Context, orderID string, fn func(o *ordermodel.OrderRecord)) (bool, error) {
	key := s.orderKey(orderID)
	found := false
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		var o ordermodel.OrderRecord
		if err := json.Unmarshal(raw, &o); err != nil {
			return fmt.Errorf("decode order %s: %w", orderID, err)
		}
		found = true
		prevCID := o.CID
		fn(&o)
		o.OrderID = orderID
		b, err := json.Marshal(&o)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, 0)
			if o.CID != prevCID {
				p.SRem(ctx, s.cidKey(prevCID), orderID)
				p.SAdd(ctx, s.cidKey(o.CID), orderID)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchAttempts; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("redis update order %s: %w", orderID, err)
		}
		return found, nil
	}
	return false, fmt.Errorf("redis update order %s: too much contention", orderID)
}

func (s *RedisOrderStore) ScanByCID(ctx context.Context, cid string) ([]ordermodel.OrderRecord, error) {
	ids, err := s.rdb.SMembers(ctx, s.cidKey(cid)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis scan cid %s: %w", cid, err)
	}
	out := make([]ordermodel.OrderRecord, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.orderKey(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget cid %s: %w", cid, err)
	}
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var o ordermodel.OrderRecord
		if err := json.Unmarshal([]byte(str), &o); err != nil {
			return nil, fmt.Errorf("decode order in cid %s: %w", cid, err)
		}
		if o.CID == cid {
			out = append(out, o)
		}
	}
	return out, nil
}
