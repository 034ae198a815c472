package terminal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/model"
)

// idleDownloader satisfies the service surface without doing anything
type idleDownloader struct{}

func (idleDownloader) SetUpdateCallback(func(*model.DownloadTask)) {}

func (idleDownloader) Enqueue(download.Request) (*model.DownloadTask, error) {
	return nil, nil
}

func (idleDownloader) Get(string) (*model.DownloadTask, bool) { return nil, false }
func (idleDownloader) All() []*model.DownloadTask             { return nil }
func (idleDownloader) Stop(string) error                      { return nil }
func (idleDownloader) StopAll()                               {}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	payload := fmt.Sprintf(`{"output_directory": %q}`, t.TempDir())
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	settings, err := config.Load(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	return settings
}

func newTestApp(t *testing.T, in io.Reader) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		settings: testSettings(t),
		svc:      idleDownloader{},
		in:       in,
		out:      out,
	}, out
}

func TestRunReturnsOnCancelAtPrompt(t *testing.T) {
	// A pipe that never delivers a line keeps the prompt blocked
	pr, pw := io.Pipe()
	defer pw.Close()

	app, _ := newTestApp(t, pr)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- app.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked at the prompt after context cancellation")
	}
}

func TestRunExitsOnQuit(t *testing.T) {
	app, _ := newTestApp(t, bytes.NewBufferString("quit\n"))

	if err := app.Run(context.Background()); err != nil {
		t.Errorf("quit should exit cleanly, got %v", err)
	}
}

func TestRunExitsOnEOF(t *testing.T) {
	app, _ := newTestApp(t, bytes.NewBufferString(""))

	if err := app.Run(context.Background()); err != nil {
		t.Errorf("EOF should exit cleanly, got %v", err)
	}
}
