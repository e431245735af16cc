// Package test provides a testing store backed by a throwaway database.
package test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kioku-app/kioku/internal/profile"
	"github.com/kioku-app/kioku/internal/version"
	"github.com/kioku-app/kioku/store"
	"github.com/kioku-app/kioku/store/db"
)

func getDriverFromEnv() string {
	driver := os.Getenv("DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	return driver
}

func getTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	mode := "dev"
	driver := getDriverFromEnv()
	dsn := os.Getenv("DSN")
	if driver == "sqlite" {
		dsn = filepath.Join(dir, fmt.Sprintf("kioku_%s.db", mode))
	}
	return &profile.Profile{
		Mode:    mode,
		Data:    dir,
		DSN:     dsn,
		Driver:  driver,
		Version: version.GetCurrentVersion(mode),
	}
}

// NewTestingStore creates a migrated store on a fresh database. The
// database lives in the test's temp dir and is removed with it.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	testingProfile := getTestingProfile(t)
	dbDriver, err := db.NewDBDriver(testingProfile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	testStore := store.New(dbDriver, testingProfile)
	if err := testStore.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		testStore.Close()
	})
	return testStore
}
