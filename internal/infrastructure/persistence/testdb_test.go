package persistence

import (
	"testing"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// registrySchema mirrors the postgres migration closely enough for sqlite
var registrySchema = []string{
	`CREATE TABLE producers (
		id TEXT PRIMARY KEY,
		tax_id VARCHAR(14) NOT NULL,
		name VARCHAR(200) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		CONSTRAINT uq_producers_tax_id UNIQUE (tax_id)
	)`,
	`CREATE TABLE properties (
		id TEXT PRIMARY KEY,
		producer_id TEXT NOT NULL REFERENCES producers(id) ON DELETE CASCADE,
		name VARCHAR(200) NOT NULL,
		city VARCHAR(100) NOT NULL,
		state VARCHAR(50) NOT NULL,
		total_area NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (total_area >= 0),
		agricultural_area NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (agricultural_area >= 0),
		vegetation_area NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (vegetation_area >= 0),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		CHECK (agricultural_area + vegetation_area <= total_area)
	)`,
	`CREATE TABLE crops (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		name VARCHAR(200) NOT NULL,
		season VARCHAR(50) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
}

// setupRegistryTestDB opens an in-memory sqlite database with the registry tables.
// A single connection keeps every statement on the same in-memory database.
func setupRegistryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	for _, ddl := range registrySchema {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func mustProducer(t *testing.T, taxID, name string) *agro.Producer {
	t.Helper()
	p, err := agro.NewProducer(taxID, name)
	require.NoError(t, err)
	return p
}

func mustProperty(t *testing.T, producer *agro.Producer, name string, total, agri, veg float64) *agro.Property {
	t.Helper()
	p, err := agro.NewProperty(producer, name, "Sorriso", "MT", agro.PropertyAreas{
		Total:        decimal.NewFromFloat(total),
		Agricultural: decimal.NewFromFloat(agri),
		Vegetation:   decimal.NewFromFloat(veg),
	})
	require.NoError(t, err)
	return p
}

func mustCrop(t *testing.T, property *agro.Property, name, season string) *agro.Crop {
	t.Helper()
	c, err := agro.NewCrop(property.ID, name, season)
	require.NoError(t, err)
	return c
}
