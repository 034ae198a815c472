package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DownloadFormat selects between audio extraction and full video download
type DownloadFormat string

const (
	FormatAudio DownloadFormat = "audio"
	FormatVideo DownloadFormat = "video"
)

// DownloadTask represents a single download driven by one yt-dlp subprocess
type DownloadTask struct {
	ID         string
	URL        string
	Format     DownloadFormat
	OutputDir  string
	Status     TaskStatus
	Percent    float64 // 0 to 100
	Speed      string  // human readable speed as reported by yt-dlp (e.g. "1.2MiB/s")
	ETA        string  // "mm:ss" or "hh:mm:ss" as reported by yt-dlp
	LastError  string  // last error message if any
	OutputPath string  // destination file reported by yt-dlp
	FileSize   int64   // size of the finished file in bytes, 0 if unknown
	Title      string  // video or playlist title once known
	IsPlaylist bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// ETAString returns the ETA for display, or an em dash if unknown
func (t *DownloadTask) ETAString() string {
	if t.ETA == "" || !t.Status.IsActive() {
		return "—"
	}
	return t.ETA
}

// FileSizeString returns the finished file size for display, or "" if unknown
func (t *DownloadTask) FileSizeString() string {
	if t.FileSize <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(t.FileSize))
}

// DisplayTitle returns the title, the output filename, or the URL, in order
// of preference
func (t *DownloadTask) DisplayTitle() string {
	if t.Title != "" && !strings.HasPrefix(t.Title, "http") {
		return t.Title
	}

	if t.OutputPath != "" {
		name := filepath.Base(t.OutputPath)
		if ext := filepath.Ext(name); ext != "" {
			name = strings.TrimSuffix(name, ext)
		}
		return name
	}

	return t.URL
}

// StatusLine returns a one-line summary suitable for the terminal and CLI
// front-ends
func (t *DownloadTask) StatusLine() string {
	switch t.Status {
	case TaskStatusDownloading:
		if t.Speed != "" {
			return fmt.Sprintf("%s %.1f%% at %s (ETA %s)", t.Status, t.Percent, t.Speed, t.ETAString())
		}
		return fmt.Sprintf("%s %.1f%%", t.Status, t.Percent)
	case TaskStatusError:
		return fmt.Sprintf("%s: %s", t.Status, t.LastError)
	case TaskStatusCompleted:
		if size := t.FileSizeString(); size != "" {
			return fmt.Sprintf("%s (%s)", t.Status, size)
		}
		return t.Status.String()
	default:
		return t.Status.String()
	}
}
