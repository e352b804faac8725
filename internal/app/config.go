package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/valv/kitbag/enumset"
)

// Commands is the value set of CLI commands the app can dispatch.
var Commands = enumset.Must(
	enumset.Pair[string]{Name: "put", Value: "put"},
	enumset.Pair[string]{Name: "reserve", Value: "reserve"},
	enumset.Pair[string]{Name: "stats", Value: "stats"},
	enumset.Pair[string]{Name: "tubes", Value: "tubes"},
	enumset.Pair[string]{Name: "fetch", Value: "fetch"},
	enumset.Pair[string]{Name: "worker", Value: "worker"},
)

func init() {
	enumset.MustRegister("kitbag/commands", Commands)
	enumset.MustRegister("kitbag/log-levels", LogLevels)
	enumset.MustRegister("kitbag/log-formats", LogFormats)
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // optional .hcl file or directory
	Command    string
	Args       []string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
	ReserveTimeout  time.Duration
}

// NewConfig validates a Config and applies fallback values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		return nil, errors.New("Command is a required configuration field and cannot be empty")
	}
	if err := Commands.Valid(cfg.Command); err != nil {
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.ReserveTimeout <= 0 {
		cfg.ReserveTimeout = 5 * time.Second
	}
	return &cfg, nil
}
