package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Playlist probing
const (
	playlistQueryParam  = "list="
	probeTimeout        = 60 * time.Second
	UnknownPlaylistName = "Unknown Playlist"
)

// PlaylistInfo summarizes a playlist without downloading anything
type PlaylistInfo struct {
	Title string
	Count int
}

// IsPlaylistURL reports whether the URL points at a playlist
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, playlistQueryParam)
}

// ProbePlaylist asks yt-dlp for a flat playlist listing and returns the entry
// count and title. The probe is best-effort; callers fall back to treating
// the URL as a single video.
func (r *Runner) ProbePlaylist(ctx context.Context, url string) (*PlaylistInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := sanitizeArgs([]string{
		url,
		"--flat-playlist",
		"--dump-single-json",
		"--quiet",
		"--ignore-errors",
		"--no-warnings",
	})

	out, err := exec.CommandContext(ctx, r.BinPath, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("playlist probe failed: %w", err)
	}

	var payload struct {
		Title   string            `json:"title"`
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse playlist probe output: %w", err)
	}

	count := 0
	for _, entry := range payload.Entries {
		if string(entry) != "null" {
			count++
		}
	}

	info := &PlaylistInfo{Title: payload.Title, Count: count}
	if info.Title == "" {
		info.Title = UnknownPlaylistName
	}
	return info, nil
}
