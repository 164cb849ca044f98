// api/util/cache_service.go

package util

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sagelms/sage/api/kv"
	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
)

const coursesCachePrefix = "courses"

// CacheService caches course listings in the key-value store. Cache failures
// are reported to the caller but must never fail the primary operation.
type CacheService struct {
	store kv.Store
	ttl   time.Duration
}

func NewCacheService(store kv.Store, ttl time.Duration) *CacheService {
	return &CacheService{store: store, ttl: ttl}
}

func (c *CacheService) SetCourses(ctx context.Context, courses []model.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, coursesCachePrefix, string(data), c.ttl)
}

// GetCourses returns the cached listing and whether it was present. A store
// error or a stale payload both read as a miss.
func (c *CacheService) GetCourses(ctx context.Context) ([]model.Course, bool) {
	data, found, err := c.store.Get(ctx, coursesCachePrefix)
	if err != nil {
		logger.Warn("Course cache read failed", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var courses []model.Course
	if err := json.Unmarshal([]byte(data), &courses); err != nil {
		logger.Warn("Course cache payload unreadable, dropping", zap.Error(err))
		_ = c.store.Delete(ctx, coursesCachePrefix)
		return nil, false
	}
	return courses, true
}

// InvalidateCourses clears every cached course entry.
func (c *CacheService) InvalidateCourses(ctx context.Context) error {
	return c.store.DeleteByPrefix(ctx, coursesCachePrefix)
}
