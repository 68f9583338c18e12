package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberpro/internal/db"
	"github.com/BruksfildServices01/barberpro/internal/db/dbtest"
)

// cmd/api só migra dentro de NewDB; rodar de novo (cmd/reminders, testes)
// não pode falhar nem duplicar o índice.
func TestMigrateIsIdempotent(t *testing.T) {
	gdb := dbtest.Open(t)

	require.NoError(t, db.Migrate(gdb))

	var count int64
	require.NoError(t, gdb.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?",
		"idx_appointments_slot_active",
	).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}
