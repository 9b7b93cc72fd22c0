// Package report renders the end-of-session assessment for the terminal
// and exports it as a PDF.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	scoreStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	metricStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Render formats a report for terminal display.
func Render(r *api.Report) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interview Report"))
	b.WriteString("\n\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Overall score: %.1f / 100", r.OverallScore)))
	b.WriteString("\n")

	if len(r.Metrics) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Metrics"))
		b.WriteString("\n")
		for _, name := range sortedMetricNames(r.Metrics) {
			b.WriteString(metricStyle.Render(fmt.Sprintf("  %-24s %.1f", name, r.Metrics[name])))
			b.WriteString("\n")
		}
	}

	if r.Summary != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(r.Summary)
		b.WriteString("\n")
	}

	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, "Areas for improvement", r.AreasForImprovement)

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press e to export a PDF, b to return to practice."))
	return b.String()
}

// Plain formats a report without styling, for clipboard copy and logs.
func Plain(r *api.Report) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Interview Report\n\nOverall score: %.1f / 100\n", r.OverallScore)

	if len(r.Metrics) > 0 {
		b.WriteString("\nMetrics\n")
		for _, name := range sortedMetricNames(r.Metrics) {
			fmt.Fprintf(&b, "  %s: %.1f\n", name, r.Metrics[name])
		}
	}
	if r.Summary != "" {
		fmt.Fprintf(&b, "\nSummary\n%s\n", r.Summary)
	}
	if len(r.Strengths) > 0 {
		b.WriteString("\nStrengths\n")
		for _, s := range r.Strengths {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if len(r.AreasForImprovement) > 0 {
		b.WriteString("\nAreas for improvement\n")
		for _, s := range r.AreasForImprovement {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("  • ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}

func sortedMetricNames(metrics map[string]float64) []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
