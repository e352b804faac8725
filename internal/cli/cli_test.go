package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HelpAndEmptyExitCleanly(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"-h"}, {}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Command(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-c", "conf.hcl",
		"-log-level", "DEBUG",
		"-workers", "8",
		"-reserve-timeout", "2s",
		"put", "emails", "hello",
	}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "put", cfg.Command)
	assert.Equal(t, []string{"emails", "hello"}, cfg.Args)
	assert.Equal(t, "conf.hcl", cfg.ConfigPath)
	assert.Equal(t, "debug", cfg.LogLevel, "level is lowercased")
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, 2*time.Second, cfg.ReserveTimeout)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"tubes"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 5*time.Second, cfg.ReserveTimeout)
	assert.Equal(t, 0, cfg.HealthcheckPort)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "unknown flag",
			args:    []string{"--this-is-not-a-valid-flag"},
			wantMsg: "flag provided but not defined",
		},
		{
			name:    "bad log format",
			args:    []string{"-log-format", "xml", "tubes"},
			wantMsg: "invalid log-format",
		},
		{
			name:    "bad log level",
			args:    []string{"-log-level", "loud", "tubes"},
			wantMsg: "invalid log-level",
		},
		{
			name:    "unknown command",
			args:    []string{"frobnicate"},
			wantMsg: "unknown command",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
