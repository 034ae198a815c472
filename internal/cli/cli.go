package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

// App is the one-shot command line front-end
type App struct {
	svc download.Downloader
	out io.Writer
}

// NewApp creates the CLI front-end writing progress to stdout
func NewApp(svc download.Downloader) *App {
	return &App{svc: svc, out: os.Stdout}
}

// Run downloads one URL and blocks until it finishes. It returns ExitOK on
// success and ExitFailure on error or interruption.
func (a *App) Run(ctx context.Context, req download.Request) int {
	if req.Playlist || ytdlp.IsPlaylistURL(req.URL) {
		req.Playlist = true
	}

	done := make(chan *model.DownloadTask, 1)
	lastPercent := -1.0
	a.svc.SetUpdateCallback(func(task *model.DownloadTask) {
		// Whole-percent steps keep piped output readable
		if task.Status == model.TaskStatusDownloading {
			if int(task.Percent) == int(lastPercent) {
				return
			}
			lastPercent = task.Percent
		}
		fmt.Fprintln(a.out, task.StatusLine())

		if task.Status.IsFinished() {
			select {
			case done <- task:
			default:
			}
		}
	})

	task, err := a.svc.Enqueue(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitFailure
	}

	fmt.Fprintf(a.out, "Downloading %s to %s\n", req.URL, req.OutputDir)

	select {
	case final := <-done:
		if final.Status != model.TaskStatusCompleted {
			if strings.Contains(final.LastError, "FFmpeg") {
				fmt.Fprintln(os.Stderr, ytdlp.FFmpegInstructions(runtime.GOOS))
			}
			return ExitFailure
		}
		if final.OutputPath != "" {
			fmt.Fprintln(a.out, "Saved to:", final.OutputPath)
		}
		return ExitOK
	case <-ctx.Done():
		if err := a.svc.Stop(task.ID); err != nil {
			slog.Warn("stop on interrupt failed", "id", task.ID, "err", err)
		}
		fmt.Fprintln(a.out, "Interrupted, download stopped.")
		return ExitFailure
	}
}
