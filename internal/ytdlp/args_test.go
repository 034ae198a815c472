package ytdlp

import (
	"slices"
	"strings"
	"testing"
)

func argsContainPair(t *testing.T, args []string, flag, value string) {
	t.Helper()
	for i, a := range args {
		if a == flag {
			if i+1 >= len(args) {
				t.Errorf("Flag %s has no value", flag)
				return
			}
			if args[i+1] != value {
				t.Errorf("Flag %s: expected value %q, got %q", flag, value, args[i+1])
			}
			return
		}
	}
	t.Errorf("Expected flag %s in args %v", flag, args)
}

func TestBuildArgsAudio(t *testing.T) {
	args := BuildArgs(Options{
		URL:            "https://www.youtube.com/watch?v=abc",
		AudioOnly:      true,
		OutputDir:      "/downloads",
		EmbedMetadata:  true,
		EmbedThumbnail: true,
	})

	if args[0] != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("URL should be the first argument, got %s", args[0])
	}

	argsContainPair(t, args, "-f", "bestaudio/best")
	argsContainPair(t, args, "--audio-format", "mp3")
	argsContainPair(t, args, "--audio-quality", "0")
	argsContainPair(t, args, "-o", "/downloads/%(title)s.%(ext)s")
	argsContainPair(t, args, "--download-archive", "/downloads/archive.txt")
	argsContainPair(t, args, "--convert-thumbnails", "jpg")

	for _, want := range []string{"-x", "--embed-thumbnail", "--embed-metadata", "--no-playlist", "--newline", "--no-post-overwrites"} {
		if !slices.Contains(args, want) {
			t.Errorf("Expected %s in args %v", want, args)
		}
	}
}

func TestBuildArgsVideo(t *testing.T) {
	args := BuildArgs(Options{
		URL:           "https://www.youtube.com/watch?v=abc",
		OutputDir:     "/downloads",
		EmbedMetadata: true,
	})

	argsContainPair(t, args, "-f", "bestvideo+bestaudio/best")

	for _, forbidden := range []string{"-x", "--audio-format", "--embed-thumbnail"} {
		if slices.Contains(args, forbidden) {
			t.Errorf("Video mode must not contain %s", forbidden)
		}
	}
}

func TestBuildArgsCookies(t *testing.T) {
	args := BuildArgs(Options{
		URL:                "https://example.com/v",
		OutputDir:          "/d",
		CookieFile:         "/home/me/cookies.txt",
		CookiesFromBrowser: "firefox",
	})

	argsContainPair(t, args, "--cookies", "/home/me/cookies.txt")
	argsContainPair(t, args, "--cookies-from-browser", "firefox")
}

func TestBuildArgsPlaylist(t *testing.T) {
	args := BuildArgs(Options{
		URL:       "https://www.youtube.com/playlist?list=PL123",
		OutputDir: "/d",
		Playlist:  true,
	})

	if !slices.Contains(args, "--yes-playlist") {
		t.Errorf("Expected --yes-playlist in %v", args)
	}
	if slices.Contains(args, "--no-playlist") {
		t.Error("Playlist mode must not contain --no-playlist")
	}
	argsContainPair(t, args, "--sleep-interval", "5")
}

func TestBuildArgsForceRedownload(t *testing.T) {
	args := BuildArgs(Options{
		URL:             "https://example.com/v",
		OutputDir:       "/d",
		ForceRedownload: true,
	})

	if slices.Contains(args, "--download-archive") {
		t.Error("Force redownload must skip the download archive")
	}
}

func TestBuildArgsExtractorArgs(t *testing.T) {
	args := BuildArgs(Options{
		URL:       "https://example.com/v",
		OutputDir: "/d",
		ExtractorArgs: []string{
			"youtubepot-bgutilhttp:base_url=http://127.0.0.1:4416",
			"youtube:player_client=default,mweb",
		},
	})

	count := 0
	for _, a := range args {
		if a == "--extractor-args" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 --extractor-args flags, got %d in %v", count, args)
	}
	if !slices.Contains(args, "youtubepot-bgutilhttp:base_url=http://127.0.0.1:4416") {
		t.Errorf("Expected provider extractor arg in %v", args)
	}
}

func TestSanitizeArgs(t *testing.T) {
	args := sanitizeArgs([]string{"ok", "", "rm -rf && true", "${HOME}", "also-ok"})

	if !slices.Equal(args, []string{"ok", "also-ok"}) {
		t.Errorf("Sanitizer left unexpected args: %v", args)
	}
}

func TestEnvExtractorArgs(t *testing.T) {
	t.Setenv(EnvPoToken, "")
	if got := EnvExtractorArgs(); got != nil {
		t.Errorf("Expected no extractor args without token, got %v", got)
	}

	t.Setenv(EnvPoToken, "web.gvs+abc123")
	got := EnvExtractorArgs()
	if len(got) != 1 || !strings.HasPrefix(got[0], "youtube:po_token=") {
		t.Errorf("Expected po_token extractor arg, got %v", got)
	}
	if !strings.HasSuffix(got[0], "web.gvs+abc123") {
		t.Errorf("Token value should be passed through, got %v", got)
	}
}
