// Package testutil provides testing utilities and helpers for the TalentFlow hiring API.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/talentflow/ui-api/internal/data/database"
	"github.com/talentflow/ui-api/internal/domain/model"
	"github.com/talentflow/ui-api/internal/migrate"
)

// testBusyTimeoutMS keeps lock waits short in tests; the single-connection
// pool means contention should never occur in the first place.
const testBusyTimeoutMS = 5000

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	TempDir() string
	Cleanup(func())
}

// RunMigrations delegates to the shared migrate package to apply production migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}

// SetupTestDB opens a fresh SQLite database in a per-test temp directory and
// runs migrations. The file is removed with the temp dir and the connection
// is closed via t.Cleanup, so no teardown call is needed.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "talentflow_test.db")
	db, err := database.Open(path, testBusyTimeoutMS)
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	t.Cleanup(func() {
		if cerr := db.Close(); cerr != nil {
			t.Logf("test db close failed: %v", cerr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatal("Failed to connect to test database:", err)
	}

	// Run production migrations to ensure schema matches actual application
	if migrateErr := RunMigrations(ctx, db); migrateErr != nil {
		t.Fatal("Failed to run migrations:", migrateErr)
	}

	return db
}

// WithTestDB is a helper that runs fn against a fresh migrated database.
func WithTestDB(t TestingTB, fn func(*sql.DB)) {
	t.Helper()
	fn(SetupTestDB(t))
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the given bool.
func BoolPtr(b bool) *bool {
	return &b
}

// IntPtr returns a pointer to the given int.
func IntPtr(i int) *int {
	return &i
}

// Int64Ptr returns a pointer to the given int64.
func Int64Ptr(i int64) *int64 {
	return &i
}

// Float64Ptr returns a pointer to the given float64.
func Float64Ptr(f float64) *float64 {
	return &f
}

// StagePtr returns a pointer to the given candidate stage.
func StagePtr(s model.CandidateStage) *model.CandidateStage {
	return &s
}

// StatusPtr returns a pointer to the given job status.
func StatusPtr(s model.JobStatus) *model.JobStatus {
	return &s
}
