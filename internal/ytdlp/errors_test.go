package ytdlp

import (
	"strings"
	"testing"
)

func TestFriendlyMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "403",
			raw:  "ERROR: unable to download video data: HTTP Error 403: Forbidden",
			want: "403",
		},
		{
			name: "po token",
			raw:  "ERROR: [youtube] abc: GVS PO Token required",
			want: "Proof of Origin",
		},
		{
			name: "unavailable",
			raw:  "ERROR: [youtube] abc: Video unavailable",
			want: "not available",
		},
		{
			name: "format",
			raw:  "ERROR: Requested format is not available",
			want: "format",
		},
		{
			name: "missing binary",
			raw:  `exec: "yt-dlp": executable file not found in $PATH`,
			want: "yt-dlp was not found",
		},
		{
			name: "unknown",
			raw:  "something completely different",
			want: "Download failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FriendlyMessage(tt.raw)
			if !strings.Contains(got, tt.want) {
				t.Errorf("FriendlyMessage(%q) = %q, expected it to mention %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFFmpegInstructionsPerOS(t *testing.T) {
	if !strings.Contains(FFmpegInstructions("windows"), "PATH") {
		t.Error("Windows instructions should mention PATH")
	}
	if !strings.Contains(FFmpegInstructions("darwin"), "brew") {
		t.Error("macOS instructions should mention Homebrew")
	}
	if !strings.Contains(FFmpegInstructions("linux"), "apt") {
		t.Error("Linux instructions should mention a package manager")
	}
}

func TestIsPlaylistURL(t *testing.T) {
	if !IsPlaylistURL("https://www.youtube.com/watch?v=abc&list=PL123") {
		t.Error("URL with list param should be a playlist")
	}
	if IsPlaylistURL("https://www.youtube.com/watch?v=abc") {
		t.Error("Plain watch URL should not be a playlist")
	}
}
