package services

import (
	"testing"
	"time"

	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidStatusTransition(t *testing.T) {
	testCases := []struct {
		current models.TournamentStatus
		next    models.TournamentStatus
		allowed bool
	}{
		{models.StatusSoon, models.StatusRegistration, true},
		{models.StatusSoon, models.StatusCanceled, true},
		{models.StatusSoon, models.StatusActive, false},
		{models.StatusRegistration, models.StatusActive, true},
		{models.StatusRegistration, models.StatusSoon, false},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusRegistration, false},
		{models.StatusCompleted, models.StatusActive, false},
		{models.StatusCanceled, models.StatusRegistration, false},
		{models.StatusActive, models.StatusActive, true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, isValidStatusTransition(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}

func TestValidateMatchNumber(t *testing.T) {
	assert.NoError(t, validateMatchNumber("1"))
	assert.NoError(t, validateMatchNumber("42"))

	for _, bad := range []string{"", "0", "-1", "all", "1.5", "one"} {
		assert.ErrorIs(t, validateMatchNumber(bad), ErrMatchNumberInvalid, "matchNo %q", bad)
	}
}

func TestValidateTournamentDates(t *testing.T) {
	reg := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, validateTournamentDates(reg, start, end))

	assert.ErrorIs(t, validateTournamentDates(time.Time{}, start, end), ErrTournamentDatesRequired)
	assert.ErrorIs(t, validateTournamentDates(start.Add(time.Hour), start, end), ErrTournamentInvalidRegDate)
	assert.ErrorIs(t, validateTournamentDates(reg, end, start), ErrTournamentInvalidDateRange)
	assert.ErrorIs(t, validateTournamentDates(reg, start, start), ErrTournamentInvalidDateRange)
}
