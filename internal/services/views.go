package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/shidoukh/shidoukh/internal/cache"
	"github.com/shidoukh/shidoukh/pkg/logger"
	"github.com/shidoukh/shidoukh/pkg/metrics"
)

// Cache keys for the two list views. A personne mutation invalidates both,
// since participant names are denormalised into the meetings view.
const (
	viewPersonnes = "views:personnes"
	viewMeetings  = "views:meetings"

	defaultViewTTL = 5 * time.Minute
)

// viewCache wraps a cache.Store with JSON encoding and hit/miss metrics.
// Every method degrades gracefully: a broken cache never breaks a read.
type viewCache struct {
	store cache.Store
	ttl   time.Duration
}

func newViewCache(store cache.Store, ttl time.Duration) viewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return viewCache{store: store, ttl: ttl}
}

func (v viewCache) lookup(ctx context.Context, key string, dest any) bool {
	if v.store == nil {
		return false
	}

	raw, ok, err := v.store.Get(ctx, key)
	if err != nil {
		logger.Warn("view cache read failed", zap.String("view", key), zap.Error(err))
		return false
	}
	if !ok {
		metrics.ViewCacheEvents.WithLabelValues(key, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("view cache entry corrupt", zap.String("view", key), zap.Error(err))
		return false
	}

	metrics.ViewCacheEvents.WithLabelValues(key, "hit").Inc()
	return true
}

func (v viewCache) fill(ctx context.Context, key string, value any) {
	if v.store == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := v.store.Set(ctx, key, raw, v.ttl); err != nil {
		logger.Warn("view cache write failed", zap.String("view", key), zap.Error(err))
	}
}

func (v viewCache) invalidate(ctx context.Context, keys ...string) {
	if v.store == nil {
		return
	}

	if err := v.store.Delete(ctx, keys...); err != nil {
		logger.Warn("view cache invalidation failed", zap.Error(err))
		return
	}
	for _, key := range keys {
		metrics.ViewCacheEvents.WithLabelValues(key, "invalidate").Inc()
	}
}
