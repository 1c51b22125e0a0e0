package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/config"
)

func TestMigrateDBCreatesAllTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))

	for _, table := range []string{
		"usuarios", "audit_log", "produtos", "pedidos", "pedido_itens", "posts",
	} {
		assert.True(t, db.Migrator().HasTable(table), "table %s missing", table)
	}
}

func TestMigrateDBPropagatesFailure(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_fail?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqldb, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqldb.Close())

	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(db)
	assert.Error(t, a.MigrateDB(false))
}
