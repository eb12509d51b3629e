package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/codesync/pkg/logging"
)

func TestFromContext(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		//nolint:staticcheck // nil context is handled explicitly
		assert.Same(t, logging.Default(), logging.FromContext(nil))
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
		assert.Same(t, logging.Default(), logging.FromContext(logging.WithLogger(context.Background(), nil)))
	})

	t.Run("run id and source tag every line", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithRunID(ctx, "run-1234")
		ctx = logging.WithSource(ctx, "new-codes.json")

		logging.FromContext(ctx).Warn().Str("code", "C123").Msg("Mismatched displays for code")
		logging.FromContext(ctx).Info().Msg("Loaded code system")

		lines := tl.Lines()
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Contains(t, line, `"run_id":"run-1234"`)
			assert.Contains(t, line, `"source":"new-codes.json"`)
		}
		assert.Contains(t, lines[0], `"code":"C123"`)
	})
}

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf))

	logging.FromContext(context.Background()).Info().Msg("via default")
	assert.Contains(t, buf.String(), "via default")
}

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    []string
		notWant []string
	}{
		{name: "default is info", level: "", want: []string{`"level":"info"`}, notWant: []string{`"level":"debug"`}},
		{name: "debug adds caller", level: "debug", want: []string{`"level":"debug"`, `"caller":`}},
		{name: "warning alias", level: "warning", want: []string{`"level":"error"`}, notWant: []string{`"level":"info"`}},
		{name: "unknown falls back to info", level: "loud", want: []string{`"level":"info"`}, notWant: []string{`"level":"debug"`}},
		{name: "off", level: "off", notWant: []string{`"level":"error"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldLevel := zerolog.GlobalLevel()
			t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Format: "json"}).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, buf.String(), notWant)
			}
		})
	}
}

func TestLogOutputFile(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	path := filepath.Join(t.TempDir(), "codesync.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{Output: path})
	logger.Warn().Str("code", "C555").Msg("Proposed term does not match NCIt preferred term")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code":"C555"`, "file output is JSON")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_OUTPUT", "stdout")
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, &logging.Config{Level: "debug", Format: "console", Output: "stdout", NoColor: true}, logging.ConfigFromEnv())
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	assert.Empty(t, tl.Lines())

	tl.Trace().Msg("message 1")
	tl.Warn().Msg("message 2")

	tl.AssertContains(t, "message 1")
	assert.Len(t, tl.Lines(), 2)
	assert.Contains(t, tl.Output(), "message 2")
}

func TestNewNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
