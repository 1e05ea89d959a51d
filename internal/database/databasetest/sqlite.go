// Package databasetest provides throwaway SQLite databases for tests.
package databasetest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/config"
	"github.com/Additional-Code/ordermanager/internal/database"
	"github.com/Additional-Code/ordermanager/internal/migration"
)

// Config returns an sqlite configuration backed by a named in-memory database unique to t.
func Config(t *testing.T) config.Config {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	return config.Config{
		Database: config.Database{
			Driver:       "sqlite",
			WriterDSN:    dsn,
			ReaderDSN:    dsn,
			MaxOpenConns: 4,
			MaxIdleConns: 4,
		},
	}
}

// Open returns connections to an empty in-memory database, closed when t ends.
func Open(t *testing.T) *database.Connections {
	t.Helper()
	conns, err := database.Open(Config(t).Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conns.Close() })
	return conns
}

// OpenMigrated returns connections to an in-memory database with the schema applied.
func OpenMigrated(t *testing.T) *database.Connections {
	t.Helper()
	conns := Open(t)
	mig, err := migration.New(Config(t), conns, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, mig.Up(context.Background()))
	return conns
}
