package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"exercise-tracker-service/internal/adapter/cache"
	domain "exercise-tracker-service/internal/domain/tracker"
	"exercise-tracker-service/internal/usecase/tracker"
)

// CachedUserRepository implements tracker.UserRepository with caching
// support. It wraps a persistent repository (DB) and a cache
// implementation. Every exercise write and log query starts with a user
// lookup, so GetByID is the hot path worth caching.
type CachedUserRepository struct {
	dbRepo tracker.UserRepository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo tracker.UserRepository, cache cache.UserCache, log *zap.Logger) tracker.UserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository and warms the cache with the
// created record.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, &domain.User{ID: id, Username: u.Username}); err != nil {
			r.log.Warn("failed to warm cache after create", zap.Int64("id", id), zap.Error(err))
		}
	}

	return id, nil
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	// Try to get from cache first
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		// Only one request hits the database
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Absent users are not cached; the not-found outcome must stay fresh
		if u != nil && r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	return result.(*domain.User), nil
}

// List delegates to the DB repository.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}
