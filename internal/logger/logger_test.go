package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_Format(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		tty      bool
		wantJSON bool
	}{
		{name: "auto without terminal", format: FormatAuto, wantJSON: true},
		{name: "auto on terminal", format: FormatAuto, tty: true},
		{name: "empty means auto", format: "", wantJSON: true},
		{name: "json on terminal", format: FormatJSON, tty: true, wantJSON: true},
		{name: "console", format: FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := DefaultConfig()
			cfg.Format = tt.format
			l, err := newLogger(cfg, &buf, tt.tty)
			require.NoError(t, err)

			l.Info("sync finished", zap.String("table", "notes"))
			require.NoError(t, l.Sync())

			line := strings.TrimSpace(buf.String())
			var entry map[string]any
			isJSON := json.Unmarshal([]byte(line), &entry) == nil
			assert.Equal(t, tt.wantJSON, isJSON, line)
			assert.Contains(t, line, "sync finished")
			assert.Contains(t, line, "notes")
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "warn"
	cfg.Format = FormatJSON
	l, err := newLogger(cfg, &buf, false)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, l.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "level", cfg: Config{Level: "loud", Format: FormatJSON}},
		{name: "format", cfg: Config{Level: "info", Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLogger(tt.cfg, &bytes.Buffer{}, false)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatConsole
	cfg.File = filepath.Join(t.TempDir(), "cloudsync.log")
	l, err := newLogger(cfg, &buf, false)
	require.NoError(t, err)

	l.Info("written twice", zap.Int("rows", 3))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "written twice", entry["msg"])
	assert.EqualValues(t, 3, entry["rows"])
	assert.Contains(t, buf.String(), "written twice")
}
