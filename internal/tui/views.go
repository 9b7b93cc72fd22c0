package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SinomthaMzamo/vuka-coach/internal/fsm"
	"github.com/SinomthaMzamo/vuka-coach/internal/report"
	"github.com/SinomthaMzamo/vuka-coach/internal/session"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	questionStyle = lipgloss.NewStyle().Bold(true).PaddingTop(1).PaddingBottom(1)
	recordStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	busyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	noticeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	tipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	answeredMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
)

func (m Model) View() string {
	snap := m.ctrl.Snapshot()

	header := m.renderHeader(snap)
	status := m.renderStatusBar(snap)

	var body string
	switch {
	case m.showHelp:
		body = m.help.View(m.keys)
	case m.overlay == overlayQuestions:
		body = m.renderQuestionList(snap)
	case m.overlay == overlayStars:
		body = m.renderStarStories(snap)
	case snap.State == fsm.StateReportShown:
		body = report.Render(snap.Report)
	default:
		body = m.renderInterviewRoom(snap)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader(snap session.Snapshot) string {
	title := fmt.Sprintf("vuka — question %d/%d", snap.Index+1, snap.QuestionCount)
	if snap.State == fsm.StateReportShown {
		title = "vuka — interview report"
	}
	return headerStyle.Render(title) + "\n"
}

func (m Model) renderInterviewRoom(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(questionStyle.Render(snap.Question))
	b.WriteString("\n")

	switch snap.State {
	case fsm.StateAwaitingAction:
		b.WriteString("Press ")
		b.WriteString(recordStyle.Render("r"))
		b.WriteString(" to record your answer, ")
		b.WriteString(mutedStyle.Render("p to hear the question again."))
		b.WriteString("\n")

	case fsm.StateRecording:
		b.WriteString(recordStyle.Render("● Recording"))
		b.WriteString(mutedStyle.Render("  press r again to stop"))
		b.WriteString("\n")

	case fsm.StateProcessingAnswer:
		b.WriteString(busyStyle.Render(m.spin.View() + " Analyzing your answer..."))
		b.WriteString("\n")

	case fsm.StateFeedbackShown:
		if snap.Feedback != nil {
			b.WriteString(mutedStyle.Render("You said: " + snap.Feedback.Transcription))
			b.WriteString("\n\n")
			b.WriteString(snap.Feedback.FeedbackText)
			b.WriteString("\n")
			if snap.Feedback.ImprovementTip != "" {
				b.WriteString("\n")
				b.WriteString(tipStyle.Render("Tip: " + snap.Feedback.ImprovementTip))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("f replay feedback · t retry · n next · g finish"))
		b.WriteString("\n")

	case fsm.StateNavigating:
		b.WriteString(busyStyle.Render(m.spin.View() + " Loading question..."))
		b.WriteString("\n")

	case fsm.StateFinishing:
		b.WriteString(busyStyle.Render(m.spin.View() + " Generating your report..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderQuestionList(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Questions"))
	b.WriteString("\n\n")

	for i, q := range snap.Questions {
		line := fmt.Sprintf("%2d. %s", i+1, q)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render("> " + line)
		case i == snap.Index:
			line = "* " + line
		default:
			line = "  " + line
		}
		if snap.Answered[i] {
			line += " " + answeredMark
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter jump · esc close"))
	return b.String()
}

func (m Model) renderStarStories(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("STAR Stories"))
	b.WriteString("\n")

	for _, story := range snap.StarStories {
		b.WriteString("\n")
		b.WriteString(questionStyle.Render(story.Title))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Situation: ") + story.Situation + "\n")
		b.WriteString(mutedStyle.Render("Task:      ") + story.Task + "\n")
		b.WriteString(mutedStyle.Render("Action:    ") + story.Action + "\n")
		b.WriteString(mutedStyle.Render("Result:    ") + story.Result + "\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("esc close"))
	return b.String()
}

func (m Model) renderStatusBar(snap session.Snapshot) string {
	var parts []string
	if snap.Notice != "" {
		parts = append(parts, noticeStyle.Render(snap.Notice))
	}
	if snap.Playing {
		parts = append(parts, busyStyle.Render("♪ "+snap.PlayingClip))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d/%d answered · ? help · q quit",
		snap.AnsweredCount, snap.QuestionCount)))
	return "\n" + strings.Join(parts, "  ")
}
