// Package testdb opens throwaway sqlite stores for repository tests.
package testdb

import (
	"fmt"
	"regexp"
	"testing"

	"foodgram-go/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9]+`)

// New returns a migrated in-memory database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeName.ReplaceAllString(t.Name(), "_"))
	gormDB, err := db.NewSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gormDB))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}
