package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/agro/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add crops index", "add_crops_index"},
		{"Add-Property_Areas", "add_property_areas"},
		{"Safra de Café", "safra_de_cafe"},
		{"  região   norte  ", "regiao_norte"},
		{"v2 schema!!", "v2_schema"},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := CreateMigration(dir, "create registry", "initial tables")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_registry.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_registry.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: create_registry (up)")
	assert.Contains(t, string(up), "-- Description: initial tables")

	second, err := CreateMigration(dir, "add season index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(down)")
	assert.NotContains(t, string(down), "Description")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_add_index.up.sql":           {Data: []byte("CREATE INDEX ...")},
		"000001_create_tables.up.sql":       {Data: []byte("CREATE TABLE ...")},
		"000001_create_tables.down.sql":     {Data: []byte("DROP TABLE ...")},
		"README.md":                         {Data: []byte("docs")},
		"embed.go":                          {Data: []byte("package migrations")},
		"nested/000003_ignored.up.sql":      {Data: []byte("")},
		"000004_missing_direction.sql":      {Data: []byte("")},
		"000005_seed_reference_data.up.sql": {Data: []byte("INSERT ...")},
	}

	got, err := ListMigrations(fsys)
	require.NoError(t, err)

	assert.Equal(t, []MigrationInfo{
		{Version: 1, Name: "create_tables", HasDown: true},
		{Version: 2, Name: "add_index", HasDown: false},
		{Version: 5, Name: "seed_reference_data", HasDown: false},
	}, got)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	got, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	got, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, uint(1), got[0].Version)
	assert.Equal(t, "create_registry_tables", got[0].Name)
	for _, m := range got {
		assert.True(t, m.HasDown, "migration %06d_%s has no down file", m.Version, m.Name)
	}
}
