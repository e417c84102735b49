package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/opsretry/internal/probe"
	"github.com/imamik/opsretry/internal/util/retry"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// delayRow is one line of a backoff schedule.
type delayRow struct {
	Attempt int
	Delay   time.Duration
	Total   time.Duration
}

// schedule computes the waits after each of attempts rejected attempts.
func schedule(b retry.Backoff, attempts int) []delayRow {
	rows := make([]delayRow, 0, attempts)
	var total time.Duration
	for attempt := 1; attempt <= attempts; attempt++ {
		d := b.Delay(attempt)
		total += d
		rows = append(rows, delayRow{Attempt: attempt, Delay: d, Total: total})
	}
	return rows
}

// renderSchedule produces a styled backoff schedule.
func renderSchedule(operation string, b retry.Backoff, rows []delayRow) string {
	var sb strings.Builder

	name := operation
	if name == "" {
		name = "defaults"
	}
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("  opsretry delay: " + name))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  base %s, exponent %g, max delay %s, jitter %t",
		b.Base, b.Exponent, b.MaxDelay, b.Jitter)))
	sb.WriteString("\n\n")

	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %-8s %14s %14s", "Attempt", "Wait", "Elapsed")))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  " + strings.Repeat("─", 38)))
	sb.WriteString("\n")
	for _, row := range rows {
		fmt.Fprintf(&sb, "  %-8d %14s %14s\n", row.Attempt, row.Delay, row.Total)
	}
	return sb.String()
}

// renderProbeResults produces one styled line per probed URL.
func renderProbeResults(results []probe.Result) string {
	var sb strings.Builder
	sb.WriteString(sectionStyle.Render("  Probes"))
	sb.WriteString("\n")
	for _, res := range results {
		status := "-"
		if res.Status != 0 {
			status = fmt.Sprintf("%d", res.Status)
		}
		mark := failStyle.Render("✗")
		if res.OK {
			mark = okStyle.Render("✓")
		}
		fmt.Fprintf(&sb, "  %s %-4s %s\n", mark, status, res.URL)
	}
	return sb.String()
}
