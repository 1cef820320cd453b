package domain

import (
	"fmt"
	"time"
)

// EventKind classifies a progress event.
type EventKind string

// Event kinds. Complete and Error are terminal.
const (
	EventStarting EventKind = "starting"
	EventProgress EventKind = "progress"
	EventComplete EventKind = "complete"
	EventError    EventKind = "error"
)

// IsTerminal returns true if no event follows this kind.
func (k EventKind) IsTerminal() bool {
	return k == EventComplete || k == EventError
}

// Stage is a state of the hydration pipeline.
// Stages only ever advance in declaration order; Error is reachable from any stage.
type Stage int

// Hydration stages.
const (
	StageStarting Stage = iota
	StageFetching
	StageFiltering
	StagePersisting
	StageComplete
	StageError
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageStarting:
		return "starting"
	case StageFetching:
		return "fetching"
	case StageFiltering:
		return "filtering"
	case StagePersisting:
		return "persisting"
	case StageComplete:
		return "complete"
	case StageError:
		return "error"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ProgressEvent is one message of a hydration's progress stream.
type ProgressEvent struct {
	// RunID identifies the hydration run that produced the event.
	RunID string

	// Kind classifies the event.
	Kind EventKind

	// Stage is the pipeline stage the event was emitted from.
	Stage Stage

	// Message is human-readable and meant to be rendered verbatim.
	Message string

	// Current and Total are optional counters for the unit of work in progress.
	Current int
	Total   int

	// Processed is the number of cards persisted. Set on complete events.
	Processed int

	// Matched is the number of cards that survived filtering. Set on complete events.
	Matched int

	// Err carries the failure on error events.
	Err error

	// At is when the event was emitted.
	At time.Time
}

// Fraction returns Current/Total in [0,1], or 0 when Total is unknown.
func (e ProgressEvent) Fraction() float64 {
	if e.Total <= 0 {
		return 0
	}
	f := float64(e.Current) / float64(e.Total)
	if f > 1 {
		return 1
	}
	return f
}

// StrategyKind names an acquisition strategy.
type StrategyKind string

// Acquisition strategies in descending selection priority.
const (
	StrategySet       StrategyKind = "set"
	StrategySeries    StrategyKind = "series"
	StrategyNames     StrategyKind = "names"
	StrategyName      StrategyKind = "name"
	StrategyAttribute StrategyKind = "attribute"
)

// HydrationResult summarises a finished hydration.
type HydrationResult struct {
	RunID    string
	Strategy StrategyKind

	// Candidates is the number of distinct briefs the catalog returned.
	Candidates int

	// AlreadyStored is the number of candidates skipped by dedup.
	AlreadyStored int

	// Fetched is the number of cards fetched in full detail.
	Fetched int

	// Matched is the number of fetched cards that passed the fine filter.
	Matched int

	// Processed is the number of cards upserted.
	Processed int

	// Degraded is the number of existence-check batches that failed.
	Degraded int
}
