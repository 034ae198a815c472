package ytdlp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// Runner launches yt-dlp subprocesses and feeds parsed progress events to a
// callback. One Run call owns one process.
type Runner struct {
	BinPath string
}

// NewRunner returns a Runner invoking the given binary, or "yt-dlp" from
// PATH when empty
func NewRunner(binPath string) *Runner {
	if binPath == "" {
		binPath = DefaultBinary
	}
	return &Runner{BinPath: binPath}
}

// Available reports whether the yt-dlp binary can be found
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.BinPath)
	return err == nil
}

// Run builds the argument list for opts, starts yt-dlp in its own process
// group and blocks until it exits. Every recognized stdout line is delivered
// to onEvent. Cancelling ctx terminates the whole process group.
func (r *Runner) Run(ctx context.Context, opts Options, onEvent func(Event)) error {
	args := BuildArgs(opts)

	slog.Info("starting yt-dlp", "url", opts.URL, "args", args)

	cmd := exec.Command(r.BinPath, args...)
	// yt-dlp spawns ffmpeg children; a process group lets one SIGTERM reach
	// them all
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", r.BinPath, err)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			terminateGroup(cmd.Process.Pid)
		case <-done:
		}
	}()

	var wg sync.WaitGroup
	var stderrTail []string

	wg.Add(2)
	go func() {
		defer wg.Done()
		scanLines(stdout, func(line string) {
			if ev, ok := ParseLine(line); ok && onEvent != nil {
				onEvent(ev)
			}
		})
	}()
	go func() {
		defer wg.Done()
		scanLines(stderr, func(line string) {
			slog.Error("yt-dlp", "url", opts.URL, "err", line)
			stderrTail = appendTail(stderrTail, line)
		})
	}()

	wg.Wait()
	err = cmd.Wait()
	close(done)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		if len(stderrTail) > 0 {
			return fmt.Errorf("yt-dlp failed: %w: %s", err, strings.Join(stderrTail, "; "))
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	return nil
}

func terminateGroup(pid int) {
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		slog.Warn("failed to resolve process group", "pid", pid, "err", err)
		return
	}
	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		slog.Warn("failed to terminate process group", "pgid", pgid, "err", err)
	}
}

func scanLines(r io.Reader, fn func(string)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
}

const stderrTailSize = 5

func appendTail(tail []string, line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return tail
	}
	tail = append(tail, line)
	if len(tail) > stderrTailSize {
		tail = tail[1:]
	}
	return tail
}
