package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "matrimony.db")

	gdb, err := Open(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite, Path: path}})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, gdb.Create(&models.Service{Title: "Personal Matchmaking", Description: "d", Icon: "Heart"}).Error)

	_, err = os.Stat(path)
	require.NoError(t, err, "database file written below the created directory")
}

func TestEnsureSQLiteDir(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantDir string
	}{
		{name: "empty path is in memory"},
		{name: "memory", path: ":memory:"},
		{name: "uri dsn is left to the driver", path: "file:test.db?mode=memory"},
		{name: "file in new directory", path: "sub/x.db", wantDir: "sub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			require.NoError(t, ensureSQLiteDir(tt.path))

			if tt.wantDir == "" {
				entries, err := os.ReadDir(".")
				require.NoError(t, err)
				assert.Empty(t, entries)

				return
			}

			info, err := os.Stat(tt.wantDir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}
