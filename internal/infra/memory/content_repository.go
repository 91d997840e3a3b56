package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"classquiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ContentRepository caches the content set with a TTL so repeated match
// starts do not hit the backing store.
type ContentRepository struct {
	loader ContentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    domain.ContentSet
	expiresAt time.Time
}

func NewContentRepository(loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ContentRepository) Content(ctx context.Context) (domain.ContentSet, error) {
	now := r.clock()

	r.mu.RLock()
	if r.expiresAt.After(now) {
		set := r.cached
		r.mu.RUnlock()
		return set, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("content", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.expiresAt.After(now) {
			set := r.cached
			r.mu.RUnlock()
			return set, nil
		}
		r.mu.RUnlock()

		set, err := r.loader.LoadContent(ctx)
		if err != nil {
			return domain.ContentSet{}, err
		}

		r.mu.Lock()
		r.cached = set
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return domain.ContentSet{}, err
	}
	return result.(domain.ContentSet), nil
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
