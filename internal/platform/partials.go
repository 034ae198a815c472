package platform

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Patterns left behind by interrupted yt-dlp runs
var partialSuffixes = []string{
	".part",
	".temp",
	".tmp",
	".ytdl",
	".ytdl.meta",
	".frag",
	".incomplete",
	".downloading",
}

// Thumbnails written before conversion can also be stranded; they get a
// longer grace window because a conversion may still pick them up
const (
	partialMaxAge   = time.Hour
	thumbnailMaxAge = 2 * time.Hour
)

// CollectIncompleteFiles walks the output directory and returns files that
// look like remnants of an interrupted download, restricted to recently
// modified files so unrelated old data is never touched
func CollectIncompleteFiles(outputDir string) []string {
	if outputDir == "" {
		return nil
	}
	if _, err := os.Stat(outputDir); err != nil {
		return nil
	}

	var found []string
	now := time.Now()

	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		maxAge, ok := classifyPartial(d.Name())
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) < maxAge {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		slog.Warn("error scanning for incomplete files", "dir", outputDir, "err", err)
	}

	return found
}

func classifyPartial(name string) (time.Duration, bool) {
	lower := strings.ToLower(name)

	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return partialMaxAge, true
		}
	}
	if strings.Contains(lower, ".fragment") {
		return partialMaxAge, true
	}
	if strings.HasSuffix(lower, ".webp") {
		return thumbnailMaxAge, true
	}

	return 0, false
}

// RemoveFiles deletes the given files, returning how many were removed
func RemoveFiles(paths []string) int {
	removed := 0
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("failed to clean up file", "path", path, "err", err)
			}
			continue
		}
		removed++
	}
	return removed
}
