package terminal

import (
	"fmt"
	"strings"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Progress bar rendering
const (
	barWidth       = 30
	barFilledRune  = '█'
	barEmptyRune   = '░'
	ansiClearLine  = "\r\033[K"
	maxTitleLength = 40
)

// renderProgressLine formats one task as a single console line. The caller
// prefixes ansiClearLine to redraw in place.
func renderProgressLine(task *model.DownloadTask) string {
	switch task.Status {
	case model.TaskStatusDownloading:
		var b strings.Builder
		b.WriteString(renderBar(task.Percent))
		fmt.Fprintf(&b, " %5.1f%%", task.Percent)
		if task.Speed != "" {
			fmt.Fprintf(&b, "  %s", task.Speed)
		}
		fmt.Fprintf(&b, "  ETA %s", task.ETAString())
		return b.String()
	case model.TaskStatusProcessing:
		return renderBar(task.Percent) + " processing (ffmpeg)…"
	default:
		return task.StatusLine()
	}
}

// renderBar draws a fixed-width block bar for percent in [0, 100]
func renderBar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * barWidth)

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < barWidth; i++ {
		if i < filled {
			b.WriteRune(barFilledRune)
		} else {
			b.WriteRune(barEmptyRune)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// trimTitle shortens long titles for the status header
func trimTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength-1]) + "…"
}
