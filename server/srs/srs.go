// Package srs implements the SM-2 variant scheduling algorithm.
//
// The engine is pure: given a state, an outcome and a clock reading it
// returns the next state. Persistence and logging are the caller's job.
package srs

import (
	"math"
	"time"
)

// Algorithm constants.
const (
	// MinEaseFactor is the floor below which the ease factor never drops.
	MinEaseFactor = 1.3
	// MaxEaseFactor is the ceiling above which the ease factor never grows.
	// It equals the initial ease factor, so a fresh item cannot get easier.
	MaxEaseFactor = 2.5
	// MaxIntervalDays caps the review interval at one year.
	MaxIntervalDays = 365

	// FirstIntervalDays is the interval after the first correct recall.
	FirstIntervalDays = 1
	// SecondIntervalDays is the interval after the second correct recall.
	SecondIntervalDays = 6

	easeBonus   = 0.1
	easePenalty = 0.2
)

// State is an immutable snapshot of one item's schedule. Operations return a
// new value instead of mutating the receiver.
type State struct {
	IntervalDays int
	EaseFactor   float64
	Reps         int
	NextReview   time.Time
}

// DefaultState returns the schedule seeded at item creation: never reviewed
// and due immediately.
func DefaultState(now time.Time) State {
	return State{
		IntervalDays: 0,
		EaseFactor:   MaxEaseFactor,
		Reps:         0,
		NextReview:   now,
	}
}

// IsDue reports whether the item is due at the given time. The due predicate
// is inclusive: an item scheduled exactly at now is due.
func (s State) IsDue(now time.Time) bool {
	return !s.NextReview.After(now)
}

// Apply computes the next schedule for the given outcome.
//
// Correct recall grows the interval (1 day, then 6, then interval times
// ease), bumps the ease factor by 0.1 and increments reps. Incorrect recall
// resets the interval to 1 day and drops the ease factor by 0.2, but leaves
// reps alone: reps counts lifetime correct recalls, and the learning history
// survives a lapse. All values are clamped to the documented bounds.
//
// The interval product is rounded half away from zero (math.Round). Both
// factors are positive, so this is plain round-half-up.
func Apply(s State, known bool, now time.Time) State {
	next := s

	if known {
		switch s.Reps {
		case 0:
			next.IntervalDays = FirstIntervalDays
		case 1:
			next.IntervalDays = SecondIntervalDays
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * s.EaseFactor))
		}
		if next.IntervalDays > MaxIntervalDays {
			next.IntervalDays = MaxIntervalDays
		}
		next.EaseFactor = math.Min(s.EaseFactor+easeBonus, MaxEaseFactor)
		next.Reps = s.Reps + 1
	} else {
		next.IntervalDays = FirstIntervalDays
		next.EaseFactor = math.Max(s.EaseFactor-easePenalty, MinEaseFactor)
	}

	next.NextReview = now.AddDate(0, 0, next.IntervalDays)
	return next
}
