package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melitabakes/bakery/internal/logger"
)

func TestInit(t *testing.T) {
	testCases := []struct {
		name         string
		cfg          logger.Log
		wantOutput   bool
		outputIsJSON bool
	}{
		{
			name:       "no writer enabled",
			cfg:        logger.Log{LogLevel: "", ServiceName: "test", AppName: "test"},
			wantOutput: false,
		},
		{
			name: "console info",
			cfg: logger.Log{
				LogLevel: "info", ServiceName: "test", AppName: "test",
				Console: logger.Console{Enabled: true},
			},
			wantOutput:   true,
			outputIsJSON: true,
		},
		{
			name: "console writer trace",
			cfg: logger.Log{
				LogLevel: "trace", ServiceName: "test", AppName: "test",
				Console: logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			wantOutput: true,
		},
		{
			name: "console json trace with caller",
			cfg: logger.Log{
				LogLevel: "trace", ServiceName: "test", AppName: "test", ReportCaller: true,
				Console: logger.Console{Enabled: true},
			},
			wantOutput:   true,
			outputIsJSON: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, func() {
				require.NoError(t, logger.Init(tc.cfg))

				log.Info().Msg("info message")
				log.Error().Str("cake", "truffle").Msg("error message")
			})

			if !tc.wantOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if tc.outputIsJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var entry map[string]any
					require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q is not json", line)
					assert.Equal(t, "test", entry["app"])
				}
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	err := logger.Init(logger.Log{LogLevel: "loud", ServiceName: "s", AppName: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")

	require.ErrorIs(t, logger.Init(logger.Log{LogLevel: "info", AppName: "a"}), logger.ErrServiceNameIsEmpty)
	require.ErrorIs(t, logger.Init(logger.Log{LogLevel: "info", ServiceName: "s"}), logger.ErrAppNameIsEmpty)
}

func TestInitRollingFiles(t *testing.T) {
	dir := t.TempDir()

	cfg := logger.Log{
		LogLevel:    "debug",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:  true,
			Path:     dir,
			ErrorLog: "error.log",
			InfoLog:  "info.log",
			TraceLog: "trace.log",
			WarnLog:  "warn.log",
		},
	}

	require.NoError(t, logger.Init(cfg))

	log.Info().Msg("oven preheated")
	log.Warn().Msg("flour running low")
	log.Error().Msg("cake burnt")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "oven preheated")
	assert.NotContains(t, string(info), "cake burnt")

	warn, err := os.ReadFile(filepath.Join(dir, "warn.log"))
	require.NoError(t, err)
	assert.Contains(t, string(warn), "flour running low")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "cake burnt")
}

func TestLevelWriterDisabled(t *testing.T) {
	var buf bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &buf}

	n, err := lw.WriteLevel(zerolog.Disabled, []byte("nothing"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = w, w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout, os.Stderr = stdout, stderr

	return <-outC
}
