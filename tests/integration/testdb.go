// Package integration runs the registry against a real PostgreSQL started
// with testcontainers. Every test is skipped under -short.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/agro/backend/internal/infrastructure/migration"
	"github.com/agro/backend/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresImage = "postgres:16-alpine"

var (
	sharedContainer    *tcpostgres.PostgresContainer
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
	sharedMigrated     bool
)

// TestDB is a migrated database connection
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
	t     *testing.T
}

// skipShort skips integration tests in short mode
func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func startContainer(ctx context.Context, dbName string) (*tcpostgres.PostgresContainer, string, error) {
	container, err := tcpostgres.Run(ctx,
		postgresImage,
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("start postgres container: %w", err)
	}
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", fmt.Errorf("postgres connection string: %w", err)
	}
	return container, dsn, nil
}

// NewEmptyTestDB starts a dedicated container without applying migrations.
// The container is terminated when the test ends.
func NewEmptyTestDB(t *testing.T) *TestDB {
	t.Helper()
	skipShort(t)

	ctx := context.Background()
	container, dsn, err := startContainer(ctx, "agro_empty_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	return connect(t, dsn)
}

// NewSharedTestDB returns a connection to the package's migrated container,
// starting it on first use. Tables are truncated before the test runs.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	skipShort(t)

	sharedContainerMu.Lock()
	if sharedContainer == nil {
		container, dsn, err := startContainer(context.Background(), "agro_test")
		if err != nil {
			sharedContainerMu.Unlock()
			require.NoError(t, err)
		}
		sharedContainer = container
		sharedContainerDSN = dsn
	}
	dsn := sharedContainerDSN
	sharedContainerMu.Unlock()

	tdb := connect(t, dsn)

	sharedContainerMu.Lock()
	if !sharedMigrated {
		tdb.Migrate()
		sharedMigrated = true
	}
	sharedContainerMu.Unlock()

	tdb.CleanTables()
	return tdb
}

func connect(t *testing.T, dsn string) *TestDB {
	t.Helper()

	gormLog := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), persistence.GormConfig(gormLog))
	require.NoError(t, err, "failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	tdb := &TestDB{DB: db, SqlDB: sqlDB, DSN: dsn, t: t}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return tdb
}

// Migrate applies the embedded migrations over a separate connection, since
// closing the migrator closes its pool.
func (tdb *TestDB) Migrate() {
	tdb.t.Helper()

	m, sqlDB := tdb.NewMigrator()
	defer func() {
		_ = m.Close()
		_ = sqlDB.Close()
	}()
	require.NoError(tdb.t, m.Up(), "failed to run migrations")
}

// NewMigrator opens a dedicated pool and wraps it in a Migrator.
// The caller closes both.
func (tdb *TestDB) NewMigrator() (*migration.Migrator, *sql.DB) {
	tdb.t.Helper()

	sqlDB, err := sql.Open("postgres", tdb.DSN)
	require.NoError(tdb.t, err)
	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(tdb.t, err)
	return m, sqlDB
}

// CleanTables truncates every registry table
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	err := tdb.DB.Exec("TRUNCATE TABLE crops, properties, producers CASCADE").Error
	require.NoError(tdb.t, err, "failed to truncate tables")
}

// TableExists reports whether a table exists in the public schema
func (tdb *TestDB) TableExists(name string) bool {
	tdb.t.Helper()
	var exists bool
	err := tdb.DB.Raw(`SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ?
	)`, name).Scan(&exists).Error
	require.NoError(tdb.t, err)
	return exists
}

// CleanupSharedContainer terminates the shared container; call it from TestMain
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
		sharedMigrated = false
	}
}
