// Package logger builds the zap logger shared by the client and server binaries.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config describes log level, encoding and the optional rotated log file.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File enables a rotated log file in addition to stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns info level, auto format, no file.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     FormatAuto,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// New builds a logger writing to stderr and, when configured, to a rotated file.
// The file always gets JSON.
func New(cfg Config) (*zap.Logger, error) {
	return newLogger(cfg, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newLogger(cfg Config, out io.Writer, tty bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	enc, err := encoder(cfg.Format, tty)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), level),
	}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func encoder(format string, tty bool) (zapcore.Encoder, error) {
	switch format {
	case FormatJSON:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case FormatConsole:
		return consoleEncoder(tty), nil
	case FormatAuto, "":
		if tty {
			return consoleEncoder(true), nil
		}
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func consoleEncoder(color bool) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zapcore.NewConsoleEncoder(ec)
}
