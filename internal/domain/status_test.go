package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		name    string
		from    StatusName
		to      StatusName
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to no_show", StatusPending, StatusNoShow, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, TransitionAllowed(tt.from, tt.to))
		})
	}
}

func TestStatusName_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestParseStatusName(t *testing.T) {
	name, err := ParseStatusName("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, name)

	_, err = ParseStatusName("unknown")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	// Имена статусов регистрозависимы
	_, err = ParseStatusName("Confirmed")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
