// Package logging builds the zap logger shared by all commands.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where and how much to log
type Options struct {
	// File enables a rolling log file at this path. Empty logs to Console.
	File string
	// Debug lowers the level from info to debug
	Debug bool
	// Console receives logs when File is empty; defaults to os.Stderr
	Console io.Writer
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

// New returns a sugared logger with a console encoder writing to a rolling
// file or to the console
func New(opts Options) *zap.SugaredLogger {
	var ws zapcore.WriteSyncer
	if opts.File != "" {
		// 10MB per file, 3 backups, 7 days
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		})
	} else {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		ws = zapcore.AddSync(console)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), ws, level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Sync flushes buffered entries, ignoring the error stderr returns on some
// platforms
func Sync(log *zap.SugaredLogger) {
	if log != nil {
		_ = log.Sync()
	}
}
