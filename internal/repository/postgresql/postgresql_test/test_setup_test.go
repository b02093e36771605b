package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hrms-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/postgresql"
)

// TestDatabaseSetup holds a migrated connection to the test database.
type TestDatabaseSetup struct {
	DB    *database.DB
	Store *postgresql.RecordStore
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	store := postgresql.NewRecordStore(db)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db, Store: store}
	if err := setup.Truncate(ctx); err != nil {
		t.Fatalf("failed to truncate test database: %v", err)
	}
	return setup
}

// Truncate removes every record.
func (s *TestDatabaseSetup) Truncate(ctx context.Context) error {
	if _, err := s.DB.Exec(ctx, "TRUNCATE TABLE kv_records"); err != nil {
		return fmt.Errorf("truncate kv_records: %w", err)
	}
	return nil
}
