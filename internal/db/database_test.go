package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
)

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	gdb, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(gdb))

	var fk int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	supplier := models.Supplier{Name: "Acme", CNPJ: "00.000.000/0001-00"}
	require.NoError(t, gdb.Create(&supplier).Error)
	require.NoError(t, gdb.Create(&models.Product{Name: "Widget", SupplierID: supplier.ID}).Error)

	err = gdb.Delete(&models.Supplier{}, supplier.ID).Error
	require.Error(t, err, "a referenced supplier must not be deletable")

	err = gdb.Create(&models.Product{Name: "Orphan", SupplierID: 999}).Error
	require.Error(t, err)

	require.NoError(t, Ping(ctx, gdb))
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "oracle", "x")
	require.Error(t, err)

	for _, driver := range []string{DriverPostgres, DriverPQ, DriverMySQL} {
		_, err := Open(ctx, driver, "")
		require.Error(t, err, driver)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	gdb, err := Open(context.Background(), "", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(gdb))
	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"suppliers", "products", "users"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestQueryLogger_UsesContextLoggerWithoutParams(t *testing.T) {
	gdb, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	require.NoError(t, Migrate(gdb))

	var buf bytes.Buffer
	ctx := logging.IntoContext(context.Background(), logging.NewWithWriter(&buf, "debug"))
	tx := gdb.WithContext(ctx)

	var u models.User
	err = tx.Where("email = ?", "ghost@example.com").First(&u).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "a missing record is not logged")

	user := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "$2a$10$very-secret-hash", Role: models.RoleUser}
	require.NoError(t, tx.Create(&user).Error)
	dup := user
	dup.ID = 0
	require.Error(t, tx.Create(&dup).Error)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "db_query_failed", line["msg"])
	assert.Contains(t, line["sql"], "INSERT INTO")
	assert.NotContains(t, buf.String(), "very-secret-hash")
	assert.NotContains(t, buf.String(), "ana@example.com")
}

func TestQueryLogger_LogMode(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.IntoContext(context.Background(), logging.NewWithWriter(&buf, "debug"))

	q := newQueryLogger()
	silent := q.LogMode(gormlogger.Silent)
	silent.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	silent.Error(ctx, "boom")
	assert.Empty(t, buf.String())

	q.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 1", 1 }, nil)
	assert.Contains(t, buf.String(), "db_query_slow")
	assert.Equal(t, gormlogger.Warn, q.level, "LogMode returns a copy")
}
