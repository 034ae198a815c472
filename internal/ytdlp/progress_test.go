package ytdlp

import "testing"

func TestParseLineProgress(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		percent float64
		speed   string
		eta     string
	}{
		{
			name:    "full download line",
			line:    "[download]  42.7% of 10.00MiB at 1.21MiB/s ETA 00:12",
			percent: 42.7,
			speed:   "1.21MiB/s",
			eta:     "00:12",
		},
		{
			name:    "integer percent",
			line:    "[download] 100% of 10.00MiB in 00:08",
			percent: 100,
		},
		{
			name:    "ffmpeg progress",
			line:    "[ffmpeg]  12.5%",
			percent: 12.5,
		},
		{
			name:    "carriage return noise",
			line:    "\r[download]   3.2% of ~25.17MiB at  512.00KiB/s ETA 01:23",
			percent: 3.2,
			speed:   "512.00KiB/s",
			eta:     "01:23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := ParseLine(tt.line)
			if !ok {
				t.Fatalf("ParseLine(%q) should match", tt.line)
			}
			if ev.Kind != EventProgress {
				t.Fatalf("Expected EventProgress, got %v", ev.Kind)
			}
			if ev.Percent != tt.percent {
				t.Errorf("Expected percent %v, got %v", tt.percent, ev.Percent)
			}
			if ev.Speed != tt.speed {
				t.Errorf("Expected speed %q, got %q", tt.speed, ev.Speed)
			}
			if ev.ETA != tt.eta {
				t.Errorf("Expected ETA %q, got %q", tt.eta, ev.ETA)
			}
		})
	}
}

func TestParseLineDestination(t *testing.T) {
	ev, ok := ParseLine("[download] Destination: /downloads/My Song.webm")
	if !ok || ev.Kind != EventDestination {
		t.Fatalf("Expected destination event, got %+v ok=%v", ev, ok)
	}
	if ev.Path != "/downloads/My Song.webm" {
		t.Errorf("Expected path to be extracted, got %q", ev.Path)
	}
}

func TestParseLineProcessing(t *testing.T) {
	tests := []struct {
		line  string
		stage string
	}{
		{`[Merger] Merging formats into "/d/v.mkv"`, "Merging formats"},
		{"[ExtractAudio] Destination: /d/v.mp3", "Extracting audio"},
		{"[EmbedThumbnail] ffmpeg: Adding thumbnail to \"/d/v.mp3\"", "Embedding thumbnail"},
	}

	for _, tt := range tests {
		ev, ok := ParseLine(tt.line)
		if !ok || ev.Kind != EventProcessing {
			t.Errorf("ParseLine(%q): expected processing event, got %+v ok=%v", tt.line, ev, ok)
			continue
		}
		if ev.Stage != tt.stage {
			t.Errorf("ParseLine(%q): expected stage %q, got %q", tt.line, tt.stage, ev.Stage)
		}
	}
}

func TestParseLineAlreadyDownloaded(t *testing.T) {
	ev, ok := ParseLine("[download] video abc: has already been recorded in the archive")
	if !ok || ev.Kind != EventAlreadyDownloaded {
		t.Fatalf("Expected already-downloaded event, got %+v ok=%v", ev, ok)
	}
}

func TestParseLineIgnoresNoise(t *testing.T) {
	noise := []string{
		"",
		"   ",
		"[youtube] abc: Downloading webpage",
		"WARNING: some warning text",
		"random output",
	}
	for _, line := range noise {
		if ev, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) should not match, got %+v", line, ev)
		}
	}
}

func TestParseLineExtractAudioDestinationWins(t *testing.T) {
	// An ExtractAudio destination line is a processing signal, not a
	// download destination
	ev, ok := ParseLine("[ExtractAudio] Destination: /d/v.mp3")
	if !ok || ev.Kind != EventProcessing {
		t.Fatalf("Expected processing event, got %+v", ev)
	}
}
