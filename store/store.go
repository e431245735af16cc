package store

import (
	"time"

	"github.com/kioku-app/kioku/internal/profile"
	"github.com/kioku-app/kioku/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// reviewStateCache caches review states by vocabulary UID. Entries are
	// invalidated on every write to the owning item.
	reviewStateCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		reviewStateCache: cache.New(cache.Config{
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        1000,
		}),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.reviewStateCache.Close()
	return s.driver.Close()
}
