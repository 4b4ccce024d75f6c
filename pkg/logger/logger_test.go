package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yzays8/filmr/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{name: "info level", cfg: &config.LoggingConfig{Level: "info"}},
		{name: "debug level", cfg: &config.LoggingConfig{Level: "debug"}},
		{name: "empty level defaults to info", cfg: &config.LoggingConfig{}},
		{name: "invalid level", cfg: &config.LoggingConfig{Level: "loud"}, wantErr: true},
		{
			name: "file output",
			cfg:  &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "filmr.log")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFileOutputReceivesStructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmr.log")
	orig := Console
	Console = &bytes.Buffer{}
	defer func() { Console = orig }()

	l, err := New(&config.LoggingConfig{Level: "debug", File: path, NoColor: true})
	require.NoError(t, err)

	l.WithField("session_id", "abc").InfoWithFields("Listing page processed", map[string]interface{}{
		"page":     3,
		"duration": 20 * time.Millisecond,
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"abc"`)
	assert.Contains(t, string(data), `"page":3`)
	assert.Contains(t, string(data), `"app":"filmr"`)
}

func TestLevelFiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	orig := Console
	Console = &buf
	defer func() { Console = orig }()

	l, err := New(&config.LoggingConfig{Level: "warn", NoColor: true})
	require.NoError(t, err)

	l.InfoWithFields("hidden", nil)
	l.WithError(errors.New("boom")).WarnWithFields("shown", map[string]interface{}{"page": 2})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "page=2")
}

func TestTestLoggerSharesBufferWithChildren(t *testing.T) {
	l := NewTestLogger()
	child := l.WithField("session_id", "s1").WithError(errors.New("boom"))

	child.WarnWithFields("request failed", nil)
	l.Info("plain")

	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "s1", msgs[0].Fields["session_id"])
	assert.Equal(t, "boom", msgs[0].Fields["error"])
	assert.True(t, l.HasMessage("WARN", "request"))
	assert.Len(t, l.GetMessagesByLevel("INFO"), 1)

	l.Clear()
	assert.Empty(t, l.Messages())
}

func TestLogRequestLevels(t *testing.T) {
	l := NewTestLogger()
	LogRequest(l, "GET", "https://filmarks.com/users/x", 200, time.Millisecond)
	LogRequest(l, "GET", "https://filmarks.com/users/x?page=9", 404, time.Millisecond)
	LogRequest(l, "GET", "https://filmarks.com/users/x", 403, time.Millisecond)
	LogRequest(l, "GET", "https://filmarks.com/users/x", 503, time.Millisecond)

	assert.Len(t, l.GetMessagesByLevel("DEBUG"), 2)
	assert.Len(t, l.GetMessagesByLevel("WARN"), 1)
	assert.Len(t, l.GetMessagesByLevel("ERROR"), 1)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.WithField("k", "v").WithError(errors.New("x")).InfoWithFields("m", nil)
	})
	assert.Equal(t, l, OrGlobal(l))
}
