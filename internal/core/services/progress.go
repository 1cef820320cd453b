package services

import (
	"context"
	"time"

	"github.com/SergioXp/holostack/internal/core/domain"
	"github.com/SergioXp/holostack/internal/logger"
)

// terminalGrace bounds how long a terminal event waits for buffer room
// once the run is cancelled.
const terminalGrace = 5 * time.Second

// progressFunc is the side channel strategies use to report units of work.
type progressFunc func(message string, current, total int)

// reporter turns pipeline milestones into an ordered event stream.
// Stages only advance; the first terminal event closes the stream for
// further sends.
type reporter struct {
	ctx     context.Context
	runID   string
	events  chan<- domain.ProgressEvent
	stage   domain.Stage
	done    bool
	now     func() time.Time
	observe func(domain.ProgressEvent)

	// grace is how long a terminal event may wait after cancellation.
	grace time.Duration
}

func newReporter(
	ctx context.Context,
	runID string,
	events chan<- domain.ProgressEvent,
	now func() time.Time,
) *reporter {
	if now == nil {
		now = time.Now
	}
	return &reporter{
		ctx:    ctx,
		runID:  runID,
		events: events,
		stage:  domain.StageStarting,
		now:    now,
		grace:  terminalGrace,
	}
}

// start emits the single starting event.
func (r *reporter) start(message string) {
	r.send(domain.ProgressEvent{Kind: domain.EventStarting, Stage: domain.StageStarting, Message: message})
}

// advance moves to a later stage and announces it. Moving backwards or
// staying put is ignored.
func (r *reporter) advance(stage domain.Stage, message string) {
	if r.done || stage <= r.stage || stage >= domain.StageComplete {
		return
	}
	r.stage = stage
	r.send(domain.ProgressEvent{Kind: domain.EventProgress, Stage: stage, Message: message})
}

// progress reports incremental work within the current stage.
func (r *reporter) progress(message string, current, total int) {
	r.send(domain.ProgressEvent{
		Kind:    domain.EventProgress,
		Stage:   r.stage,
		Message: message,
		Current: current,
		Total:   total,
	})
}

// complete emits the terminal success event.
func (r *reporter) complete(result *domain.HydrationResult, message string) {
	r.stage = domain.StageComplete
	r.send(domain.ProgressEvent{
		Kind:      domain.EventComplete,
		Stage:     domain.StageComplete,
		Message:   message,
		Current:   result.Processed,
		Total:     result.Matched,
		Processed: result.Processed,
		Matched:   result.Matched,
	})
}

// fail emits the terminal error event.
func (r *reporter) fail(err error) {
	r.stage = domain.StageError
	r.send(domain.ProgressEvent{
		Kind:    domain.EventError,
		Stage:   domain.StageError,
		Message: err.Error(),
		Err:     err,
	})
}

func (r *reporter) send(ev domain.ProgressEvent) {
	if r.done {
		return
	}
	ev.RunID = r.runID
	ev.At = r.now()
	terminal := ev.Kind.IsTerminal()
	if terminal {
		r.done = true
	}
	if r.observe != nil {
		r.observe(ev)
	}

	if terminal {
		r.deliverTerminal(ev)
		return
	}
	select {
	case r.events <- ev:
	case <-r.ctx.Done():
	}
}

// deliverTerminal sends the terminal event. After cancellation it keeps
// waiting up to grace for a draining consumer to make room, so the stream
// still ends with the reason it stopped. It is dropped only when nobody
// reads within that time.
func (r *reporter) deliverTerminal(ev domain.ProgressEvent) {
	select {
	case r.events <- ev:
		return
	case <-r.ctx.Done():
	}

	timer := time.NewTimer(r.grace)
	defer timer.Stop()
	select {
	case r.events <- ev:
	case <-timer.C:
		logger.Warn("run %s: %s event dropped, progress stream not read", r.runID, ev.Kind)
	}
}
