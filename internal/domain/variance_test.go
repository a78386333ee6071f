package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcrew/dispatch/internal/domain"
)

// eventAt builds a timeline event that fired varianceMin minutes after its estimate.
func eventAt(status domain.LifecycleStatus, varianceMin int) domain.TripStatusEvent {
	est := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return domain.TripStatusEvent{
		Status:    status,
		Timestamp: est.Add(time.Duration(varianceMin) * time.Minute),
		Estimated: &est,
	}
}

func TestClassifyVariance_BandIsSymmetric(t *testing.T) {
	cases := []struct {
		minutes int
		want    domain.VarianceClass
	}{
		{-10, domain.VarianceEarly},
		{-3, domain.VarianceEarly},
		{-2, domain.VarianceOnTime}, // band edge
		{0, domain.VarianceOnTime},
		{2, domain.VarianceOnTime}, // exactly 2 minutes late is still on-time
		{3, domain.VarianceLate},
		{45, domain.VarianceLate},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ClassifyVariance(tc.minutes), "variance %d", tc.minutes)
	}
}

func TestVarianceMinutes_RoundsToNearestMinute(t *testing.T) {
	est := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	e := domain.TripStatusEvent{
		Timestamp: est.Add(2*time.Minute + 40*time.Second),
		Estimated: &est,
	}

	m, ok := domain.VarianceMinutes(e)
	require.True(t, ok)
	assert.Equal(t, 3, m)
}

func TestVarianceMinutes_NoEstimate(t *testing.T) {
	e := domain.TripStatusEvent{Timestamp: time.Now()}

	_, ok := domain.VarianceMinutes(e)
	assert.False(t, ok)
}

func TestSummarize_SumsOnlyPositiveVariances(t *testing.T) {
	timeline := []domain.TripStatusEvent{
		eventAt(domain.StatusScheduled, 0),
		eventAt(domain.StatusAssigned, -5), // early, must not offset delays
		eventAt(domain.StatusEnRoute, 4),
		eventAt(domain.StatusInProgress, 6),
	}

	s := domain.Summarize(timeline)

	assert.Equal(t, 10, s.DelayMinutes)
	assert.True(t, s.Delayed)
	assert.False(t, s.OnSchedule)
}

func TestSummarize_AllEarlyOrOnTime(t *testing.T) {
	timeline := []domain.TripStatusEvent{
		eventAt(domain.StatusScheduled, 0),
		eventAt(domain.StatusAssigned, -4),
		eventAt(domain.StatusEnRoute, 2), // within the tolerance band
	}

	s := domain.Summarize(timeline)

	assert.True(t, s.OnSchedule)
	// +2 is on-time by classification but still counts toward the delay sum.
	assert.Equal(t, 2, s.DelayMinutes)
	assert.True(t, s.Delayed)
}

func TestSummarize_SkipsEventsWithoutEstimate(t *testing.T) {
	timeline := []domain.TripStatusEvent{
		{Status: domain.StatusScheduled, Timestamp: time.Now()},
	}

	s := domain.Summarize(timeline)

	assert.True(t, s.OnSchedule)
	assert.False(t, s.Delayed)
	assert.Zero(t, s.DelayMinutes)
}

func TestTimelineVariances_PreservesOrder(t *testing.T) {
	timeline := []domain.TripStatusEvent{
		eventAt(domain.StatusScheduled, 0),
		{Status: domain.StatusAssigned, Timestamp: time.Now()}, // no estimate, skipped
		eventAt(domain.StatusEnRoute, 7),
	}

	got := domain.TimelineVariances(timeline)

	require.Len(t, got, 2)
	assert.Equal(t, domain.StatusScheduled, got[0].Status)
	assert.Equal(t, domain.StatusEnRoute, got[1].Status)
	assert.Equal(t, domain.VarianceLate, got[1].Class)
	assert.Equal(t, 7, got[1].Minutes)
}
