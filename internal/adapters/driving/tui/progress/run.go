package progress

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SergioXp/holostack/internal/core/domain"
)

// ErrNoTerminalEvent is returned when the stream closed without a
// complete or error event.
var ErrNoTerminalEvent = errors.New("progress stream ended without a result")

// Run shows the view until the hydration finishes and returns its terminal
// event. opts are passed to the bubbletea program.
func Run(
	title string,
	events <-chan domain.ProgressEvent,
	cancel context.CancelFunc,
	opts ...tea.ProgramOption,
) (domain.ProgressEvent, error) {
	m := New(title, events, cancel)

	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		if cancel != nil {
			cancel()
		}
		return m.Last(), fmt.Errorf("progress view: %w", err)
	}

	final, ok := m.Final()
	if !ok {
		return m.Last(), ErrNoTerminalEvent
	}
	return final, nil
}
