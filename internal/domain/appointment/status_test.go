package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

func TestDerivedStatus(t *testing.T) {
	today := "2026-10-17"

	assert.Equal(t, StatusScheduled, DerivedStatus(StatusScheduled, "2026-10-17", today))
	assert.Equal(t, StatusScheduled, DerivedStatus(StatusScheduled, "2026-10-20", today))
	assert.Equal(t, StatusCompleted, DerivedStatus(StatusScheduled, "2026-10-16", today))
	assert.Equal(t, StatusCancelled, DerivedStatus(StatusCancelled, "2026-10-16", today))
	assert.Equal(t, StatusCompleted, DerivedStatus(StatusCompleted, "2026-10-20", today))
}

func TestIsUpcoming(t *testing.T) {
	assert.True(t, IsUpcoming("2026-10-17", "2026-10-17"))
	assert.False(t, IsUpcoming("2026-10-16", "2026-10-17"))
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)

	err := Cancel(ap, now)
	assert.True(t, httperr.IsBusiness(err, CodeInvalidState))
}
