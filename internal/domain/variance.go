package domain

import (
	"math"
	"time"
)

// VarianceClass buckets an event's schedule variance.
type VarianceClass string

const (
	VarianceEarly  VarianceClass = "early"
	VarianceOnTime VarianceClass = "on-time"
	VarianceLate   VarianceClass = "late"
)

// varianceToleranceMinutes is the ± band treated as on-time.
// Exactly 2 minutes late is still on-time; 3 minutes late is late.
const varianceToleranceMinutes = 2

// VarianceMinutes returns how many minutes late (positive) or early
// (negative) an event fired relative to its estimate, rounded to the nearest
// minute. ok is false when the event carries no estimate.
func VarianceMinutes(e TripStatusEvent) (minutes int, ok bool) {
	if e.Estimated == nil {
		return 0, false
	}
	diff := e.Timestamp.Sub(*e.Estimated)
	return int(math.Round(diff.Minutes())), true
}

// ClassifyVariance buckets a variance into early / on-time / late.
func ClassifyVariance(minutes int) VarianceClass {
	switch {
	case minutes < -varianceToleranceMinutes:
		return VarianceEarly
	case minutes > varianceToleranceMinutes:
		return VarianceLate
	default:
		return VarianceOnTime
	}
}

// ScheduleSummary is the trip-level schedule adherence rollup backing the
// performance banner: total late minutes, and whether the trip is delayed
// or running fully on schedule.
type ScheduleSummary struct {
	DelayMinutes int  `json:"delay_minutes"`
	Delayed      bool `json:"delayed"`
	OnSchedule   bool `json:"on_schedule"`
}

// Summarize aggregates schedule variance across a trip's timeline.
// DelayMinutes sums only positive (late) variances; a single late event makes
// the trip delayed regardless of how early the others were. Events without an
// estimate are skipped.
func Summarize(timeline []TripStatusEvent) ScheduleSummary {
	s := ScheduleSummary{OnSchedule: true}
	for _, e := range timeline {
		m, ok := VarianceMinutes(e)
		if !ok {
			continue
		}
		if ClassifyVariance(m) == VarianceLate {
			s.OnSchedule = false
		}
		if m > 0 {
			s.DelayMinutes += m
		}
	}
	s.Delayed = s.DelayMinutes > 0
	return s
}

// EventVariance pairs an event with its computed variance for presentation.
type EventVariance struct {
	Status   LifecycleStatus `json:"status"`
	Minutes  int             `json:"variance_minutes"`
	Class    VarianceClass   `json:"class"`
	Actual   time.Time       `json:"timestamp"`
	Expected time.Time       `json:"estimated_time"`
}

// TimelineVariances computes per-event variances for every event in the
// timeline that carries an estimate, in timeline order.
func TimelineVariances(timeline []TripStatusEvent) []EventVariance {
	out := make([]EventVariance, 0, len(timeline))
	for _, e := range timeline {
		m, ok := VarianceMinutes(e)
		if !ok {
			continue
		}
		out = append(out, EventVariance{
			Status:   e.Status,
			Minutes:  m,
			Class:    ClassifyVariance(m),
			Actual:   e.Timestamp,
			Expected: *e.Estimated,
		})
	}
	return out
}
