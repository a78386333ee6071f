package domain

import (
	"fmt"
	"time"
)

// LifecycleStatus is one step in a trip's operational lifecycle.
type LifecycleStatus string

const (
	StatusScheduled  LifecycleStatus = "scheduled"
	StatusAssigned   LifecycleStatus = "assigned"
	StatusEnRoute    LifecycleStatus = "en-route"
	StatusInProgress LifecycleStatus = "in-progress"
	StatusCompleted  LifecycleStatus = "completed"

	// StatusCancelled is a terminal side-state. It is never entered through
	// the forward chain: cancellation removes the trip from the store.
	StatusCancelled LifecycleStatus = "cancelled"
)

// TripStatusEvent is one entry in a trip's append-only status timeline.
// Estimated is the time this event should have fired, derived from the
// previous event's timestamp plus the stage's reference duration. The
// initial scheduled event carries Estimated equal to its own timestamp.
type TripStatusEvent struct {
	Status    LifecycleStatus `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Estimated *time.Time      `json:"estimated_time,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// stage describes one forward transition: the state it leads to, how long the
// transition should normally take measured from the previous event, and the
// default timeline note.
type stage struct {
	next     LifecycleStatus
	duration time.Duration
	note     string
}

// transitions is the lifecycle state machine. Each state maps to the single
// state that may follow it; anything else is an illegal transition.
var transitions = map[LifecycleStatus]stage{
	StatusScheduled:  {StatusAssigned, 5 * time.Minute, "Driver assigned to trip"},
	StatusAssigned:   {StatusEnRoute, 10 * time.Minute, "Driver en route to pickup"},
	StatusEnRoute:    {StatusInProgress, 15 * time.Minute, "Picked up staff, heading to destination"},
	StatusInProgress: {StatusCompleted, 30 * time.Minute, "Trip completed"},
}

// Next returns the only status that may legally follow s.
// ok is false for completed and cancelled, which are terminal.
func (s LifecycleStatus) Next() (next LifecycleStatus, ok bool) {
	st, ok := transitions[s]
	return st.next, ok
}

// NewScheduledEvent builds the initial timeline event for a freshly created
// trip. Estimated equals the actual timestamp: a trip is never early or late
// at the moment of its own creation.
func NewScheduledEvent(now time.Time) TripStatusEvent {
	est := now
	return TripStatusEvent{
		Status:    StatusScheduled,
		Timestamp: now,
		Estimated: &est,
		Note:      "Trip scheduled",
	}
}

// Advance moves the trip to target and appends the corresponding timeline
// event. target must be exactly the next state in the forward chain; skipping,
// moving backward, or advancing past completed returns ErrIllegalTransition.
//
// note overrides the stage's default timeline note when non-empty — the
// dispatch service uses this to record which driver was assigned.
//
// Advance operates on a copy; the caller submits the returned trip to the
// store as a whole-record replacement.
func Advance(t Trip, target LifecycleStatus, now time.Time, note string) (Trip, error) {
	st, ok := transitions[t.Current]
	if !ok {
		return Trip{}, fmt.Errorf("%w: trip is %s", ErrIllegalTransition, t.Current)
	}
	if target != st.next {
		return Trip{}, fmt.Errorf("%w: %s cannot move to %s, next is %s",
			ErrIllegalTransition, t.Current, target, st.next)
	}
	if note == "" {
		note = st.note
	}

	est := t.Timeline[len(t.Timeline)-1].Timestamp.Add(st.duration)
	t.Current = target
	t.Timeline = append(t.Timeline, TripStatusEvent{
		Status:    target,
		Timestamp: now,
		Estimated: &est,
		Note:      note,
	})
	return t, nil
}
