package ytdlp

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
)

// Defaults used when an option is left empty
const (
	DefaultBinary           = "yt-dlp"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	ArchiveFileName         = "archive.txt"
)

// EnvPoToken names the environment variable whose value is passed through to
// yt-dlp as a youtube po_token extractor argument
const EnvPoToken = "YT_PO_TOKEN"

const playlistSleepIntervalSecs = "5"

var shellMetaRe = regexp.MustCompile(`(\$\{)|(\&\&)`)

// Options describes one download for the argument builder
type Options struct {
	URL                string
	AudioOnly          bool
	OutputDir          string
	FilenameTemplate   string
	CookieFile         string
	CookiesFromBrowser string
	EmbedMetadata      bool
	EmbedThumbnail     bool
	Playlist           bool
	ForceRedownload    bool // skip the download archive and overwrite
	ExtractorArgs      []string
}

// BuildArgs constructs the yt-dlp argument list for the given options. The
// returned slice is already sanitized.
func BuildArgs(opts Options) []string {
	template := opts.FilenameTemplate
	if template == "" {
		template = DefaultFilenameTemplate
	}

	args := []string{
		opts.URL,
		"--newline",
		"--no-colors",
		"--retries", "5",
		"--no-exec",
	}

	if opts.AudioOnly {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "0",
		)
		if opts.EmbedThumbnail {
			args = append(args,
				"--embed-thumbnail",
				"--write-thumbnail",
				"--convert-thumbnails", "jpg",
			)
		}
	} else {
		args = append(args, "-f", "bestvideo+bestaudio/best")
	}

	if opts.EmbedMetadata {
		args = append(args, "--embed-metadata")
	}

	if opts.Playlist {
		args = append(args, "--yes-playlist", "--sleep-interval", playlistSleepIntervalSecs)
	} else {
		args = append(args, "--no-playlist")
	}

	args = append(args, "-o", filepath.Join(opts.OutputDir, template))

	if !opts.ForceRedownload {
		args = append(args,
			"--download-archive", filepath.Join(opts.OutputDir, ArchiveFileName),
			"--no-post-overwrites",
		)
	}

	if opts.CookieFile != "" {
		args = append(args, "--cookies", opts.CookieFile)
	}
	if opts.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", opts.CookiesFromBrowser)
	}

	for _, ea := range opts.ExtractorArgs {
		args = append(args, "--extractor-args", ea)
	}

	return sanitizeArgs(args)
}

// EnvExtractorArgs returns extractor arguments derived from the environment:
// a YT_PO_TOKEN value is forwarded as a youtube po_token argument
func EnvExtractorArgs() []string {
	token := os.Getenv(EnvPoToken)
	if token == "" {
		return nil
	}
	return []string{"youtube:po_token=" + token}
}

// sanitizeArgs drops empty arguments and anything carrying shell
// metacharacters; yt-dlp is exec'd directly but URLs and templates originate
// from user input
func sanitizeArgs(args []string) []string {
	args = slices.DeleteFunc(args, func(e string) bool {
		return e == "" || shellMetaRe.MatchString(e)
	})
	return args
}
