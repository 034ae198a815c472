// Package logging configures structured logging to a per-run log file and
// keeps the log directory bounded with a retention sweep.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// Log file naming
const (
	logTimeLayout = "20060102_150405"
	logFilePrefix = "yt-dlp_"
)

var logFilePattern = regexp.MustCompile(`^yt-dlp_\d{8}_\d{6}\.log$`)

// DefaultDir returns the log directory under the user config dir
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "tubefetch", "logs")
}

// Setup creates the log directory, opens a timestamped log file and installs
// a slog default logger writing to both the file and stderr. The returned
// closer must be called on shutdown.
func Setup(dir string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("%s%s.log", logFilePrefix, time.Now().Format(logTimeLayout))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, f), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return f, nil
}

// CleanOldLogs removes log files beyond the keep newest ones and returns how
// many were deleted. Files not matching the log naming scheme are ignored.
func CleanOldLogs(dir string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	var logs []string
	for _, entry := range entries {
		if !entry.IsDir() && logFilePattern.MatchString(entry.Name()) {
			logs = append(logs, entry.Name())
		}
	}

	// The timestamp in the name sorts chronologically; newest first
	sort.Sort(sort.Reverse(sort.StringSlice(logs)))

	removed := 0
	for _, name := range logs[min(keep, len(logs)):] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			slog.Warn("failed to delete old log file", "name", name, "err", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		slog.Info("log cleanup completed", "removed", removed, "kept", min(keep, len(logs)))
	}
	return removed, nil
}
