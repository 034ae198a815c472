package ytdlp

import (
	"regexp"
	"strconv"
	"strings"
)

// EventKind classifies a parsed yt-dlp stdout line
type EventKind int

const (
	// EventProgress carries percent and, when present, speed and ETA
	EventProgress EventKind = iota

	// EventDestination carries the output file path
	EventDestination

	// EventProcessing signals a postprocessing stage (merge, extract, embed)
	EventProcessing

	// EventAlreadyDownloaded signals the archive skipped the download
	EventAlreadyDownloaded
)

// Progress line patterns emitted by yt-dlp with --newline
var (
	percentRe = regexp.MustCompile(`\[(?:download|ffmpeg)\]\s+(\d+(?:\.\d+)?)%`)
	etaRe     = regexp.MustCompile(`ETA\s+([0-9:]+)`)
	speedRe   = regexp.MustCompile(`at\s+(\S+/s)`)
)

const destinationPrefix = "[download] Destination:"

// Postprocessor tags mapped to display stage names
var processingStages = map[string]string{
	"[Merger]":              "Merging formats",
	"[ExtractAudio]":        "Extracting audio",
	"[Metadata]":            "Writing metadata",
	"[EmbedThumbnail]":      "Embedding thumbnail",
	"[ThumbnailsConvertor]": "Converting thumbnail",
}

// Event is a structured view of one yt-dlp stdout line
type Event struct {
	Kind    EventKind
	Percent float64 // 0 to 100, EventProgress only
	Speed   string
	ETA     string
	Path    string // EventDestination only
	Stage   string // EventProcessing only
	Line    string // the raw line
}

// ParseLine inspects a single stdout line and reports whether it carried
// anything of interest
func ParseLine(rawLine string) (Event, bool) {
	line := strings.TrimSpace(strings.ReplaceAll(rawLine, "\r", ""))
	if line == "" {
		return Event{}, false
	}

	if strings.HasPrefix(line, destinationPrefix) {
		return Event{
			Kind: EventDestination,
			Path: strings.TrimSpace(strings.TrimPrefix(line, destinationPrefix)),
			Line: line,
		}, true
	}

	if m := percentRe.FindStringSubmatch(line); len(m) > 1 {
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Event{}, false
		}
		ev := Event{Kind: EventProgress, Percent: percent, Line: line}
		if em := etaRe.FindStringSubmatch(line); len(em) > 1 {
			ev.ETA = em[1]
		}
		if sm := speedRe.FindStringSubmatch(line); len(sm) > 1 {
			ev.Speed = sm[1]
		}
		return ev, true
	}

	for tag, stage := range processingStages {
		if strings.HasPrefix(line, tag) {
			return Event{Kind: EventProcessing, Stage: stage, Line: line}, true
		}
	}

	if strings.Contains(line, "has already been recorded in the archive") ||
		strings.Contains(line, "has already been downloaded") {
		return Event{Kind: EventAlreadyDownloaded, Line: line}, true
	}

	return Event{}, false
}
