// File: /services/cache_service.go
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheService is a Redis cache-aside layer for event reads. Every
// successful booking, payment, event or coupon mutation invalidates the
// affected keys; reads after that hit the database. A broken Redis
// connection degrades silently to the database.
type CacheService struct {
	rdb *redis.Client
	ttl time.Duration
}

const (
	eventListKeyPrefix = "events:list:"
	eventKeyPrefix     = "events:id:"
)

func NewCacheService(redisURL string) *CacheService {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logrus.WithError(err).Warn("Invalid Redis URL, event cache disabled")
		return &CacheService{}
	}
	return &CacheService{
		rdb: redis.NewClient(opts),
		ttl: 5 * time.Minute,
	}
}

func (cs *CacheService) enabled() bool {
	return cs != nil && cs.rdb != nil
}

// GetEventList returns the cached serialized list response for a filter
// key, or false on a miss.
func (cs *CacheService) GetEventList(ctx context.Context, filterKey string) ([]byte, bool) {
	return cs.get(ctx, eventListKeyPrefix+filterKey)
}

func (cs *CacheService) SetEventList(ctx context.Context, filterKey string, payload []byte) {
	cs.set(ctx, eventListKeyPrefix+filterKey, payload)
}

func (cs *CacheService) GetEvent(ctx context.Context, eventID string) ([]byte, bool) {
	return cs.get(ctx, eventKeyPrefix+eventID)
}

func (cs *CacheService) SetEvent(ctx context.Context, eventID string, payload []byte) {
	cs.set(ctx, eventKeyPrefix+eventID, payload)
}

// InvalidateEvent drops the event's detail entry and every cached list,
// since list pages embed booked counts and statuses.
func (cs *CacheService) InvalidateEvent(ctx context.Context, eventID string) {
	if !cs.enabled() {
		return
	}
	if err := cs.rdb.Del(ctx, eventKeyPrefix+eventID).Err(); err != nil {
		logrus.WithError(err).Debug("cache invalidate failed")
	}
	cs.InvalidateEventLists(ctx)
}

func (cs *CacheService) InvalidateEventLists(ctx context.Context) {
	if !cs.enabled() {
		return
	}
	iter := cs.rdb.Scan(ctx, 0, eventListKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		cs.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Debug("cache list invalidate failed")
	}
}

func (cs *CacheService) get(ctx context.Context, key string) ([]byte, bool) {
	if !cs.enabled() {
		return nil, false
	}
	payload, err := cs.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (cs *CacheService) set(ctx context.Context, key string, payload []byte) {
	if !cs.enabled() {
		return
	}
	if !json.Valid(payload) {
		return
	}
	if err := cs.rdb.Set(ctx, key, payload, cs.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("cache set failed")
	}
}
