package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/dispatch/internal/domain"
)

func mustClock(t *testing.T, s string) domain.ClockTime {
	t.Helper()
	c, err := domain.ParseClockTime(s)
	require.NoError(t, err)
	return c
}

func TestParseClockTime(t *testing.T) {
	c := mustClock(t, "08:30")
	assert.Equal(t, "08:30", c.String())

	_, err := domain.ParseClockTime("8:30am")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.ParseClockTime("25:00")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClockTime_AddMinutes_RollsTheHour(t *testing.T) {
	assert.Equal(t, "08:00", mustClock(t, "08:30").AddMinutes(-30).String())
	assert.Equal(t, "07:45", mustClock(t, "08:15").AddMinutes(-30).String())
}

func TestClockTime_AddMinutes_WrapsMidnight(t *testing.T) {
	assert.Equal(t, "23:40", mustClock(t, "00:10").AddMinutes(-30).String())
	assert.Equal(t, "00:20", mustClock(t, "23:50").AddMinutes(30).String())
}

func TestClockTime_OnDay(t *testing.T) {
	ref := time.Date(2025, 6, 1, 17, 42, 13, 0, time.UTC)
	got := mustClock(t, "08:30").OnDay(ref)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC), got)
}

func TestClockTime_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(mustClock(t, "06:05"))
	require.NoError(t, err)
	assert.Equal(t, `"06:05"`, string(b))

	var c domain.ClockTime
	require.NoError(t, json.Unmarshal([]byte(`"19:45"`), &c))
	assert.Equal(t, "19:45", c.String())

	assert.Error(t, json.Unmarshal([]byte(`1945`), &c))
}
