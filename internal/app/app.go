// Package app wires configuration, logging, and commands into the vuka
// process entrypoint.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
	"github.com/SinomthaMzamo/vuka-coach/internal/audio"
	"github.com/SinomthaMzamo/vuka-coach/internal/cli"
	"github.com/SinomthaMzamo/vuka-coach/internal/config"
	"github.com/SinomthaMzamo/vuka-coach/internal/cue"
	"github.com/SinomthaMzamo/vuka-coach/internal/doctor"
	"github.com/SinomthaMzamo/vuka-coach/internal/logging"
	"github.com/SinomthaMzamo/vuka-coach/internal/output"
	"github.com/SinomthaMzamo/vuka-coach/internal/player"
	"github.com/SinomthaMzamo/vuka-coach/internal/recorder"
	"github.com/SinomthaMzamo/vuka-coach/internal/session"
	"github.com/SinomthaMzamo/vuka-coach/internal/tui"
	"github.com/SinomthaMzamo/vuka-coach/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("vuka"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("vuka"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	cfg := cfgLoaded.Config
	if parsed.ServerURL != "" {
		cfg.ServerURL = parsed.ServerURL
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		cfgLoaded.Config = cfg
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandPractice:
		return r.commandPractice(ctx, parsed, cfg, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandPractice(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	req, err := buildInitRequest(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 2
	}

	client := api.NewClient(cfg.ServerURL, logger)

	fmt.Fprintln(r.Stdout, "Preparing your interview session...")
	sess, err := client.InitSession(ctx, req)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: start session: %v\n", err)
		logger.Error("init session failed", "error", err.Error())
		return 1
	}
	logger.Info("session initialized",
		"session_id", sess.ID,
		"questions", len(sess.Questions),
		"star_stories", len(sess.StarStories),
	)

	mic := recorder.New(cfg, logger)
	snd := player.New(cfg.Playback.Command.Argv, logger)
	cues := cue.NewNotifier(cfg.Cue, logger)
	ctrl := session.NewController(logger, client, mic, snd, cues, sess)
	copier := output.NewCopier(cfg, logger)

	model := tui.NewModel(ctrl, copier, reportDir(cfg), logger)
	prog := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	snd.SetOnChange(func() { prog.Send(tui.PlaybackChangedMsg{}) })

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("interview ui failed", "error", err.Error())
		return 1
	}

	snap := ctrl.Snapshot()
	logger.Info("session closed",
		"session_id", snap.SessionID,
		"answered", snap.AnsweredCount,
		"questions", snap.QuestionCount,
		"report_generated", snap.Report != nil,
	)
	fmt.Fprintf(r.Stdout, "Session over: %d of %d questions answered.\n", snap.AnsweredCount, snap.QuestionCount)
	return 0
}

// buildInitRequest assembles the onboarding payload from parsed flags.
func buildInitRequest(parsed cli.Parsed) (api.InitRequest, error) {
	job := parsed.Job
	if parsed.JobFile != "" {
		data, err := os.ReadFile(parsed.JobFile)
		if err != nil {
			return api.InitRequest{}, fmt.Errorf("read job file: %w", err)
		}
		job = strings.TrimSpace(string(data))
	}
	if job == "" {
		return api.InitRequest{}, fmt.Errorf("job description is empty")
	}

	return api.InitRequest{
		JobDescription: job,
		CVPath:         parsed.CVPath,
		CVText:         parsed.CVText,
	}, nil
}

// reportDir resolves where exported PDFs land; empty config falls back
// to the working directory.
func reportDir(cfg config.Config) string {
	dir := strings.TrimSpace(cfg.Report.PDFDir)
	if dir == "" {
		return "."
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			if dir == "~" {
				return home
			}
			return home + dir[1:]
		}
	}
	return dir
}
