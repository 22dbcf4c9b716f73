// Package tui is the terminal surface of the prediction controller.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/internal/events"
)

type controller interface {
	SelectSymbol(symbol domain.Symbol) <-chan domain.DisplayState
	Retry() <-chan domain.DisplayState
	ToggleMode() <-chan domain.DisplayState
	Snapshot() events.Snapshot
}

type snapshotMsg events.Snapshot

// Model is the bubbletea model rendering controller snapshots.
type Model struct {
	ctrl      controller
	snapshots <-chan events.Snapshot
	symbols   []domain.Symbol
	cursor    int
	snap      events.Snapshot
	// dismissedSeq hides the error banner of the snapshot with this seq
	dismissedSeq uint64
	dismissed    bool
	spinner      spinner.Model
	width        int
}

// New creates a model listing symbols and following snapshots.
func New(ctrl controller, symbols []domain.Symbol, snapshots <-chan events.Snapshot) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = priceStyle

	m := &Model{
		ctrl:      ctrl,
		snapshots: snapshots,
		symbols:   symbols,
		snap:      ctrl.Snapshot(),
		spinner:   sp,
	}
	for i, s := range symbols {
		if s == m.snap.Symbol {
			m.cursor = i
			break
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.snapshots))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		if msg.Seq >= m.snap.Seq {
			m.snap = events.Snapshot(msg)
		}
		return m, waitForSnapshot(m.snapshots)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.symbols)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.symbols) > 0 {
			m.ctrl.SelectSymbol(m.symbols[m.cursor])
			m.refresh()
		}

	case "r":
		m.ctrl.Retry()
		m.refresh()

	case "d":
		m.ctrl.ToggleMode()
		m.refresh()

	case "esc":
		if m.snap.State.Kind() == domain.StateError {
			m.dismissed = true
			m.dismissedSeq = m.snap.Seq
		}
	}

	return m, nil
}

// refresh reads the controller right after an action so Loading shows without waiting for the stream.
func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
}

func (m *Model) bannerVisible() bool {
	if m.snap.State.Kind() != domain.StateError {
		return false
	}
	return !m.dismissed || m.dismissedSeq != m.snap.Seq
}

func waitForSnapshot(ch <-chan events.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}
