package main

import (
	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

func ytdlpRunner() *ytdlp.Runner {
	return ytdlp.NewRunner(ytdlp.DefaultBinary)
}

func envExtractorArgs() []string {
	return ytdlp.EnvExtractorArgs()
}

// optionsBuilder folds persisted settings and the provider extractor
// arguments into the per-download yt-dlp options
func optionsBuilder(settings *config.Settings, extractorArgs []string) download.OptionsBuilder {
	return func(req download.Request) ytdlp.Options {
		return ytdlp.Options{
			URL:                req.URL,
			AudioOnly:          req.Format == model.FormatAudio,
			OutputDir:          req.OutputDir,
			CookieFile:         settings.CookieFile(),
			CookiesFromBrowser: settings.CookiesFromBrowser(),
			EmbedMetadata:      settings.EmbedMetadata(),
			EmbedThumbnail:     settings.EmbedThumbnail(),
			Playlist:           req.Playlist,
			ForceRedownload:    req.ForceRedownload,
			ExtractorArgs:      extractorArgs,
		}
	}
}
