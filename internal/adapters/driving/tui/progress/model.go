// Package progress renders a hydration's progress stream as an interactive
// terminal view.
//
// The view consumes the event channel returned by the hydration service,
// one event per Update, and quits after the terminal event. Pressing q,
// esc or ctrl+c cancels the hydration; the view keeps draining until the
// service reports why the stream ended.
package progress

import (
	"context"
	"fmt"
	"strings"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SergioXp/holostack/internal/core/domain"
)

const (
	// historySize is how many past messages stay visible under the bar.
	historySize = 5

	defaultBarWidth = 40
	maxBarWidth     = 72
)

// eventMsg carries one progress event into the model.
type eventMsg domain.ProgressEvent

// closedMsg is sent when the event channel closes.
type closedMsg struct{}

// Model is the bubbletea model for a single hydration run.
type Model struct {
	events <-chan domain.ProgressEvent
	cancel context.CancelFunc
	title  string
	styles *Styles

	spinner spinner.Model
	bar     progressbar.Model

	last    domain.ProgressEvent
	history []string
	final   *domain.ProgressEvent

	// interrupted is set once the user asked to cancel.
	interrupted bool
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// New creates a view over events. cancel is called when the user
// interrupts and may be nil.
func New(title string, events <-chan domain.ProgressEvent, cancel context.CancelFunc) *Model {
	s := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Stage

	return &Model{
		events:  events,
		cancel:  cancel,
		title:   title,
		styles:  s,
		spinner: sp,
		bar:     progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(defaultBarWidth)),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.interrupted {
				m.interrupted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w > maxBarWidth {
			w = maxBarWidth
		}
		if w > 0 {
			m.bar.Width = w
		}
		return m, nil

	case spinner.TickMsg:
		if m.final != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		ev := domain.ProgressEvent(msg)
		m.record(ev)
		if ev.Kind.IsTerminal() {
			m.final = &ev
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Hydrating " + m.title))
	b.WriteString("\n\n")

	switch {
	case m.final != nil && m.final.Kind == domain.EventComplete:
		b.WriteString(m.styles.Success.Render("✓ " + m.final.Message))
		b.WriteString("\n")
		return b.String()
	case m.final != nil:
		b.WriteString(m.styles.Error.Render("✗ " + m.final.Message))
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %s\n",
		m.spinner.View(),
		m.styles.Stage.Render(m.last.Stage.String()),
		m.last.Message,
	)
	if m.last.Total > 0 {
		fmt.Fprintf(&b, "%s %d/%d\n", m.bar.ViewAs(m.last.Fraction()), m.last.Current, m.last.Total)
	}

	if len(m.history) > 1 {
		b.WriteString("\n")
		for _, line := range m.history[:len(m.history)-1] {
			b.WriteString(m.styles.Muted.Render("  " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.interrupted {
		b.WriteString(m.styles.Help.Render("cancelling..."))
	} else {
		b.WriteString(m.styles.Help.Render("q: cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

// Final returns the terminal event, if one arrived.
func (m *Model) Final() (domain.ProgressEvent, bool) {
	if m.final == nil {
		return domain.ProgressEvent{}, false
	}
	return *m.final, true
}

// Interrupted returns true if the user cancelled the run.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Last returns the most recent event received.
func (m *Model) Last() domain.ProgressEvent {
	return m.last
}

func (m *Model) record(ev domain.ProgressEvent) {
	m.last = ev
	if ev.Message == "" {
		return
	}
	m.history = append(m.history, ev.Message)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

// waitForEvent returns a command that blocks for the next event.
func waitForEvent(events <-chan domain.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}
