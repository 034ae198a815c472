package terminal

import (
	"strings"
	"testing"

	"github.com/tubefetch/tubefetch/internal/model"
)

func TestRenderBarBounds(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, barWidth / 2},
		{100, barWidth},
		{-10, 0},
		{150, barWidth},
	}

	for _, tt := range tests {
		bar := renderBar(tt.percent)
		if got := strings.Count(bar, string(barFilledRune)); got != tt.filled {
			t.Errorf("renderBar(%v): expected %d filled cells, got %d in %s", tt.percent, tt.filled, got, bar)
		}
		if got := len([]rune(bar)); got != barWidth+2 {
			t.Errorf("renderBar(%v): expected width %d, got %d", tt.percent, barWidth+2, got)
		}
	}
}

func TestRenderProgressLineDownloading(t *testing.T) {
	task := &model.DownloadTask{
		Status:  model.TaskStatusDownloading,
		Percent: 42.5,
		Speed:   "1.20MiB/s",
		ETA:     "00:31",
	}

	line := renderProgressLine(task)
	for _, want := range []string{"42.5%", "1.20MiB/s", "ETA 00:31"} {
		if !strings.Contains(line, want) {
			t.Errorf("Progress line missing %q: %s", want, line)
		}
	}
}

func TestRenderProgressLineProcessing(t *testing.T) {
	task := &model.DownloadTask{Status: model.TaskStatusProcessing, Percent: 100}

	line := renderProgressLine(task)
	if !strings.Contains(line, "processing") {
		t.Errorf("Processing line should mention processing: %s", line)
	}
}

func TestRenderProgressLineError(t *testing.T) {
	task := &model.DownloadTask{
		Status:    model.TaskStatusError,
		LastError: "Download failed. Try using browser cookies or updating yt-dlp.",
	}

	line := renderProgressLine(task)
	if !strings.Contains(line, "Download failed") {
		t.Errorf("Error line should carry the message: %s", line)
	}
}

func TestTrimTitle(t *testing.T) {
	short := "My Video"
	if got := trimTitle(short); got != short {
		t.Errorf("Short title should pass through, got %q", got)
	}

	long := strings.Repeat("x", maxTitleLength*2)
	trimmed := trimTitle(long)
	if got := len([]rune(trimmed)); got != maxTitleLength {
		t.Errorf("Expected trimmed length %d, got %d", maxTitleLength, got)
	}
	if !strings.HasSuffix(trimmed, "…") {
		t.Errorf("Trimmed title should end with an ellipsis: %q", trimmed)
	}
}
