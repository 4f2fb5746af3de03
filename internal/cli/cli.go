// Package cli implements the systemctl command line's argument parsing,
// kept separate from main so it can be exercised by tests without an
// os.Exit in the way.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/systemic/internal/path"
)

// ExitError carries the process exit code a malformed invocation should
// produce, distinguishing a clean --help exit from an argument error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Transition names the lifecycle operation systemctl was asked to run.
type Transition string

const (
	TransitionInit         Transition = "init"
	TransitionHalt         Transition = "halt"
	TransitionSuspend      Transition = "suspend"
	TransitionResume       Transition = "resume"
	TransitionResumeOrInit Transition = "resume-or-init"
)

// Config is the fully parsed and validated set of inputs systemctl's main
// needs to run one lifecycle transition.
type Config struct {
	ConfigPath string
	Transition Transition
	Targets    []path.Path
	LogFormat  string
	LogLevel   string
}

// Parse processes command line arguments into a Config, or reports that the
// process should exit cleanly (help text) or with an error (bad arguments).
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("systemctl", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
systemctl - runs a lifecycle transition over a component configuration tree.

Usage:
  systemctl [options] <init|halt|suspend|resume|resume-or-init>

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a .hcl file or a directory containing .hcl files.")
	targetsFlag := flagSet.String("targets", "", "Comma-separated dotted component paths to restrict the transition to. Empty means the whole tree.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	transition := Transition(flagSet.Arg(0))
	switch transition {
	case TransitionInit, TransitionHalt, TransitionSuspend, TransitionResume, TransitionResumeOrInit:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown transition %q", transition)}
	}

	if *configFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "--config is required"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var targets []path.Path
	if *targetsFlag != "" {
		for _, raw := range strings.Split(*targetsFlag, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			targets = append(targets, path.New(strings.Split(raw, ".")...))
		}
	}

	return &Config{
		ConfigPath: *configFlag,
		Transition: transition,
		Targets:    targets,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	}, false, nil
}

// NewLogger builds the process's root slog.Logger from the parsed Config.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
