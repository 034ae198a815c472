package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// PlaylistProber answers whether a playlist URL holds multiple entries
type PlaylistProber interface {
	ProbePlaylist(ctx context.Context, url string) (*ytdlp.PlaylistInfo, error)
}

// App is the interactive console front-end
type App struct {
	settings *config.Settings
	svc      download.Downloader
	prober   PlaylistProber

	in  io.Reader
	out io.Writer

	lines   chan string
	readErr error
}

// NewApp creates the terminal front-end reading from stdin and writing to
// stdout
func NewApp(settings *config.Settings, svc download.Downloader, prober PlaylistProber) *App {
	return &App{
		settings: settings,
		svc:      svc,
		prober:   prober,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// Run executes the prompt loop until EOF, "quit" or context cancellation.
// Input is read on a separate goroutine so Ctrl-C interrupts a blocked
// prompt as well as a running download.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "TubeFetch — YouTube downloader")
	fmt.Fprintln(a.out, "Downloads go to:", a.settings.OutputDirectory())
	fmt.Fprintln(a.out, "Enter a URL to download, or \"quit\" to exit.")
	fmt.Fprintln(a.out)

	a.lines = make(chan string)
	go a.readInput()

	for {
		fmt.Fprint(a.out, "url> ")
		line, ok := a.readLine(ctx)
		if !ok {
			a.svc.StopAll()
			if ctx.Err() != nil {
				fmt.Fprintln(a.out)
				return ctx.Err()
			}
			return a.readErr
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}

		playlist := false
		if ytdlp.IsPlaylistURL(line) {
			playlist = a.confirmPlaylist(ctx, line)
		}

		format := a.promptFormat(ctx)
		if err := a.runDownload(ctx, line, format, playlist); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
}

// readInput pumps stdin lines into the channel until EOF or a read error
func (a *App) readInput() {
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		a.lines <- scanner.Text()
	}
	a.readErr = scanner.Err()
	close(a.lines)
}

// readLine waits for the next input line; false means EOF, a read error or
// context cancellation
func (a *App) readLine(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-a.lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

// confirmPlaylist probes the playlist and asks whether to fetch every entry
func (a *App) confirmPlaylist(ctx context.Context, url string) bool {
	info, err := a.prober.ProbePlaylist(ctx, url)
	if err != nil {
		slog.Warn("playlist probe failed, treating as single video", "url", url, "err", err)
		return false
	}

	fmt.Fprintf(a.out, "%q contains %d videos. Download all? [y/N] ", trimTitle(info.Title), info.Count)
	answer, ok := a.readLine(ctx)
	if !ok {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// promptFormat asks for audio or video, defaulting to the configured format
func (a *App) promptFormat(ctx context.Context) model.DownloadFormat {
	def := a.settings.DefaultDownloadFormat()
	hint := "[A/v]"
	if def == model.FormatVideo {
		hint = "[a/V]"
	}

	fmt.Fprintf(a.out, "format, audio or video? %s ", hint)
	answer, ok := a.readLine(ctx)
	if !ok {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "a", "audio":
		return model.FormatAudio
	case "v", "video":
		return model.FormatVideo
	default:
		return def
	}
}

// runDownload enqueues one download and blocks until it finishes, redrawing
// the progress line in place
func (a *App) runDownload(ctx context.Context, url string, format model.DownloadFormat, playlist bool) error {
	done := make(chan *model.DownloadTask, 1)
	a.svc.SetUpdateCallback(func(task *model.DownloadTask) {
		fmt.Fprint(a.out, ansiClearLine, renderProgressLine(task))
		if task.Status.IsFinished() {
			select {
			case done <- task:
			default:
			}
		}
	})
	defer a.svc.SetUpdateCallback(nil)

	task, err := a.svc.Enqueue(download.Request{
		URL:       url,
		Format:    format,
		OutputDir: a.settings.OutputDirectory(),
		Playlist:  playlist,
	})
	if err != nil {
		return err
	}

	select {
	case final := <-done:
		fmt.Fprintln(a.out)
		if final.Status == model.TaskStatusError {
			if strings.Contains(final.LastError, "FFmpeg") {
				fmt.Fprintln(a.out, ytdlp.FFmpegInstructions(runtime.GOOS))
			}
			return fmt.Errorf("%s", final.LastError)
		}
		if final.Status == model.TaskStatusCompleted && final.OutputPath != "" {
			fmt.Fprintln(a.out, "Saved to:", final.OutputPath)
		}
		return nil
	case <-ctx.Done():
		if err := a.svc.Stop(task.ID); err != nil {
			slog.Warn("stop on interrupt failed", "id", task.ID, "err", err)
		}
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Download stopped.")
		return ctx.Err()
	}
}
