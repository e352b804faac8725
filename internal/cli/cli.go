package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/valv/kitbag/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("kitbag", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
kitbag - value-object and queue/HTTP utility toolbelt.

Usage:
  kitbag [options] COMMAND [ARGS...]

Commands:
  put <tube> <body>   Insert a job into a tube.
  reserve [tube...]   Show the next ready job, then release it.
  stats [tube]        Print server or tube statistics.
  tubes               List all tubes on the server.
  fetch <url>         Perform a traced HTTP GET and print transfer metadata.
  worker [tube...]    Consume jobs continuously until interrupted.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a config .hcl file or directory.")
	cFlag := flagSet.String("c", "", "Path to a config .hcl file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the worker's HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent consumers in worker mode.")
	reserveTimeoutFlag := flagSet.Duration("reserve-timeout", 5*time.Second, "How long a single reserve waits for a job.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	command := flagSet.Arg(0)
	commandArgs := flagSet.Args()[1:]

	configPath := *configFlag
	if configPath == "" {
		configPath = *cFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if _, err := app.LogFormats.Parse(logFormat); err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if _, err := app.LogLevels.Parse(logLevel); err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:      configPath,
		Command:         command,
		Args:            commandArgs,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		WorkerCount:     *workersFlag,
		ReserveTimeout:  *reserveTimeoutFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", command)
	return config, false, nil
}
