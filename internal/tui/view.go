package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/predictor/internal/domain"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	liveBadge     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#16A34A")).Padding(0, 1)
	demoBadge     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FACC15")).Padding(0, 1)
	symbolsStyle  = lipgloss.NewStyle().MarginRight(4)
	helpStyle     = mutedStyle.MarginTop(1)
	subtitleStyle = mutedStyle.MarginBottom(1)
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("CRYPTO PRICE PREDICTOR") + "  " + modeBadge(m.snap.Mode) + "\n")
	b.WriteString(subtitleStyle.Render("Get future price predictions for your favorite cryptocurrencies") + "\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		symbolsStyle.Render(m.symbolList()),
		m.resultArea(),
	))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("↑/↓ choose • enter predict • r retry • d demo mode • esc dismiss • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) symbolList() string {
	var b strings.Builder
	for i, s := range m.symbols {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		marker := " "
		if s == m.snap.Symbol {
			marker = "•"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, marker, s))
	}
	return b.String()
}

func (m *Model) resultArea() string {
	var parts []string

	if m.bannerVisible() {
		parts = append(parts, RenderBanner(m.snap.State))
	}

	switch m.snap.State.Kind() {
	case domain.StateIdle:
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("Press enter to predict %s", m.snap.Symbol)))
	case domain.StateLoading:
		parts = append(parts, fmt.Sprintf("%s Fetching prediction for %s...", m.spinner.View(), m.snap.Symbol))
	default:
		parts = append(parts, RenderCard(m.snap.State, m.snap.Mode))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func modeBadge(mode domain.Mode) string {
	if mode == domain.ModeDemo {
		return demoBadge.Render("DEMO")
	}
	return liveBadge.Render("LIVE")
}
