package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestBusinessCodeSurvivesWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("booking: %w", Wrap("availability_check_failed", cause))

	assert.True(t, IsBusiness(err, "availability_check_failed"))
	assert.False(t, IsBusiness(err, "slot_taken"))
	assert.Equal(t, "availability_check_failed", Code(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "", Code(cause))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(gorm.ErrDuplicatedKey))
	assert.True(t, IsConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsConflict(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, IsConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsConflict(errors.New("boom")))
	assert.False(t, IsConflict(nil))
}
