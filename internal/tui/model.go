// Package tui is the interview-room terminal interface. It owns no
// session logic: every key press maps to a controller method and every
// async completion arrives as a message.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SinomthaMzamo/vuka-coach/internal/fsm"
	"github.com/SinomthaMzamo/vuka-coach/internal/output"
	"github.com/SinomthaMzamo/vuka-coach/internal/report"
	"github.com/SinomthaMzamo/vuka-coach/internal/session"
)

// overlay is a panel drawn instead of the state-derived main view.
type overlay int

const (
	overlayNone overlay = iota
	overlayQuestions
	overlayStars
)

const tickInterval = 250 * time.Millisecond

// ─── async messages ──────────────────────────────────────────────────────

type opDoneMsg struct {
	kind string
	err  error
}

type pdfSavedMsg struct {
	path string
	err  error
}

type copyDoneMsg struct{ err error }

type tickMsg time.Time

// PlaybackChangedMsg is sent from outside the program when the audio
// slot starts or stops, so the playing indicator updates immediately.
type PlaybackChangedMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────

type keyMap struct {
	Record    key.Binding
	PlayQ     key.Binding
	PlayF     key.Binding
	Retry     key.Binding
	Next      key.Binding
	Questions key.Binding
	Stars     key.Binding
	Finish    key.Binding
	Back      key.Binding
	Export    key.Binding
	CopyRep   key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Esc       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Record:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record / stop")),
		PlayQ:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play question")),
		PlayF:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "play feedback")),
		Retry:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "retry answer")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next question")),
		Questions: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "question list")),
		Stars:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star stories")),
		Finish:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "finish & report")),
		Back:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back to practice")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export pdf")),
		CopyRep:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy report")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
		Esc:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close panel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Record, k.Next, k.Questions, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Record, k.Retry, k.Next, k.Finish},
		{k.PlayQ, k.PlayF, k.Questions, k.Stars},
		{k.Export, k.CopyRep, k.Back},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model for one interview session.
type Model struct {
	ctrl   *session.Controller
	copier *output.Copier
	pdfDir string
	logger *slog.Logger

	keys     keyMap
	help     help.Model
	spin     spinner.Model
	showHelp bool

	overlay overlay
	cursor  int

	status string
	width  int
	height int
}

// NewModel builds the interview-room model around a seeded controller.
func NewModel(ctrl *session.Controller, copier *output.Copier, pdfDir string, logger *slog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return Model{
		ctrl:   ctrl,
		copier: copier,
		pdfDir: pdfDir,
		logger: logger,
		keys:   defaultKeys(),
		help:   help.New(),
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	// The session opens by speaking the intro and first question.
	m.ctrl.ToggleQuestionAudio()
	return tea.Batch(m.spin.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runOp executes the network half of a controller action off the event
// loop. A nil op (same-index jump) yields no command.
func runOp(kind string, op session.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	return func() tea.Msg {
		err := op(context.Background())
		return opDoneMsg{kind: kind, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		// Re-render so the playing indicator tracks playback that stops
		// on its own.
		return m, tickCmd()

	case PlaybackChangedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case opDoneMsg:
		// State and notices already moved inside the controller; the
		// message only triggers the re-render and status line.
		if msg.err != nil {
			m.logDebug("operation completed with error", msg.kind, msg.err)
		}
		m.status = ""
		return m, nil

	case pdfSavedMsg:
		if msg.err != nil {
			m.status = "pdf export failed: " + msg.err.Error()
		} else {
			m.status = "report saved to " + msg.path
		}
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "report copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.ctrl.Reset()
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Esc) {
			m.showHelp = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}

	switch m.overlay {
	case overlayQuestions:
		return m.handleQuestionListKey(msg)
	case overlayStars:
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Stars) {
			m.overlay = overlayNone
		}
		return m, nil
	}

	snap := m.ctrl.Snapshot()
	if snap.State == fsm.StateReportShown {
		return m.handleReportKey(msg, snap)
	}

	switch {
	case key.Matches(msg, m.keys.Record):
		if snap.State == fsm.StateRecording {
			op, err := m.ctrl.StopRecording()
			if err != nil {
				return m, nil
			}
			return m, runOp("submit", op)
		}
		_ = m.ctrl.StartRecording(context.Background())
		return m, nil

	case key.Matches(msg, m.keys.PlayQ):
		m.ctrl.ToggleQuestionAudio()
		return m, nil

	case key.Matches(msg, m.keys.PlayF):
		m.ctrl.ToggleFeedbackAudio()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		_ = m.ctrl.Retry()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		op, err := m.ctrl.Next()
		if err != nil {
			return m, nil
		}
		return m, runOp("next", op)

	case key.Matches(msg, m.keys.Finish):
		op, err := m.ctrl.Finish()
		if err != nil {
			return m, nil
		}
		return m, runOp("finish", op)

	case key.Matches(msg, m.keys.Questions):
		if !fsm.InFlight(snap.State) && snap.State != fsm.StateRecording {
			m.overlay = overlayQuestions
			m.cursor = snap.Index
		}
		return m, nil

	case key.Matches(msg, m.keys.Stars):
		if len(snap.StarStories) > 0 {
			m.overlay = overlayStars
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleQuestionListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Esc), key.Matches(msg, m.keys.Questions):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < snap.QuestionCount-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.overlay = overlayNone
		op, err := m.ctrl.SelectQuestion(m.cursor)
		if err != nil {
			return m, nil
		}
		return m, runOp("jump", op)
	}

	return m, nil
}

func (m Model) handleReportKey(msg tea.KeyMsg, snap session.Snapshot) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		_ = m.ctrl.BackToPractice()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		rep := snap.Report
		dir := m.pdfDir
		return m, func() tea.Msg {
			path, err := report.WritePDF(rep, dir)
			return pdfSavedMsg{path: path, err: err}
		}

	case key.Matches(msg, m.keys.CopyRep):
		if m.copier == nil {
			return m, nil
		}
		text := report.Plain(snap.Report)
		copier := m.copier
		return m, func() tea.Msg {
			return copyDoneMsg{err: copier.Copy(context.Background(), text)}
		}
	}

	return m, nil
}

func (m Model) logDebug(message, kind string, err error) {
	if m.logger == nil || err == nil {
		return
	}
	m.logger.Debug(message, "kind", kind, "error", err.Error())
}
