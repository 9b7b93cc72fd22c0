// Package cli parses the vuka command line.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandPractice Command = "practice"
	CommandDevices  Command = "devices"
	CommandDoctor   Command = "doctor"
	CommandVersion  Command = "version"
	CommandHelp     Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandPractice: {},
	CommandDevices:  {},
	CommandDoctor:   {},
	CommandVersion:  {},
	CommandHelp:     {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	ServerURL  string
	Job        string
	JobFile    string
	CVPath     string
	CVText     string
	ShowHelp   bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	takeValue := func(i *int, flag string) (string, error) {
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.ConfigPath = value
		case "--server":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.ServerURL = value
		case "--job":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Job = value
		case "--job-file":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.JobFile = value
		case "--cv":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.CVPath = value
		case "--cv-text":
			value, err := takeValue(&i, arg)
			if err != nil {
				return Parsed{}, err
			}
			parsed.CVText = value
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
		}
	}

	if parsed.Command == CommandPractice {
		if err := validatePractice(parsed); err != nil {
			return Parsed{}, err
		}
	}

	return parsed, nil
}

// validatePractice enforces the onboarding contract: a job description
// from exactly one source, and a CV from exactly one source.
func validatePractice(p Parsed) error {
	if p.Job == "" && p.JobFile == "" {
		return errors.New("practice requires a job description: pass --job or --job-file")
	}
	if p.Job != "" && p.JobFile != "" {
		return errors.New("pass only one of --job and --job-file")
	}
	hasFile := p.CVPath != ""
	hasText := p.CVText != ""
	if hasFile == hasText {
		return errors.New("practice requires exactly one of --cv and --cv-text")
	}
	return nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] <command> [flags]

Commands:
  practice  Start an interview practice session
  devices   List available input devices
  doctor    Run configuration and environment checks
  version   Print version information
  help      Show this help

Practice flags:
  --job TEXT       Job description text
  --job-file PATH  Read the job description from a file
  --cv PATH        CV file to upload (pdf, docx, txt)
  --cv-text TEXT   CV contents as plain text
  --server URL     Coach server URL (overrides config)

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/vuka/config.conf)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
