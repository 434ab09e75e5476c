// Package logutil configures the process-wide structured logger.
package logutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tomate-app/tomate/internal/osutil"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// Init routes slog output to a rotating log file in the data directory.
// Logging must never interfere with the TUI, so nothing is written to
// stderr unless TOMATE_DEBUG is set.
func Init(logFilePath string) {
	_ = os.MkdirAll(filepath.Dir(logFilePath), osutil.DirPermission)

	w := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}

	level := slog.LevelInfo
	if strings.TrimSpace(os.Getenv("TOMATE_DEBUG")) != "" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
