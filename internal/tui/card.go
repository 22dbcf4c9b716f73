package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/predictor/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	muted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	danger    = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1, 2)

	emptyCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(1, 2).
			Align(lipgloss.Center)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(danger).
			Foreground(danger).
			Padding(0, 1)

	symbolStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	priceStyle  = lipgloss.NewStyle().Foreground(special).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(muted)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
)

const (
	demoFooter     = "Sample data for demonstration"
	liveFooter     = "Based on historical data analysis"
	noDataTitle    = "No data available"
	noDataDemoHint = "No sample data for this symbol"
	noDataLiveHint = "Try selecting a different symbol or enable demo mode"
)

// RenderCard renders the result area for a terminal state.
// Error states render the empty card; the message belongs to RenderBanner.
// Idle and Loading render nothing.
func RenderCard(state domain.DisplayState, mode domain.Mode) string {
	switch state.Kind() {
	case domain.StatePopulated:
		result, _ := state.Result()
		return populatedCard(result, mode)
	case domain.StateEmpty, domain.StateError:
		return emptyCard(mode)
	default:
		return ""
	}
}

// RenderBanner renders the error banner, or nothing for non-error states.
func RenderBanner(state domain.DisplayState) string {
	if state.Kind() != domain.StateError {
		return ""
	}
	return bannerStyle.Render("✗ " + state.Message())
}

func populatedCard(result domain.PredictionResult, mode domain.Mode) string {
	footer := liveFooter
	if mode == domain.ModeDemo {
		footer = demoFooter
	}

	var b strings.Builder
	b.WriteString(symbolStyle.Render(result.Symbol.String()) + " ↗\n")
	b.WriteString(labelStyle.Render("Future price prediction") + "\n\n")
	b.WriteString(labelStyle.Render("Predicted Price") + "\n")
	b.WriteString(priceStyle.Render(FormatPrice(result.FinalPrediction.PredictedPriceUSDT)) + "\n\n")
	b.WriteString(labelStyle.Render("Prediction Date") + "\n")
	b.WriteString(FormatDate(result.FinalPrediction.Date) + "\n\n")
	b.WriteString(mutedStyle.Render(footer))

	return cardStyle.Render(b.String())
}

func emptyCard(mode domain.Mode) string {
	hint := noDataLiveHint
	if mode == domain.ModeDemo {
		hint = noDataDemoHint
	}
	return emptyCardStyle.Render(noDataTitle + "\n" + mutedStyle.Render(hint))
}
