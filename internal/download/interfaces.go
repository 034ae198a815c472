package download

import (
	"context"

	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// Invoker runs one download subprocess to completion, delivering parsed
// progress events along the way. *ytdlp.Runner is the production
// implementation.
type Invoker interface {
	Run(ctx context.Context, opts ytdlp.Options, onEvent func(ytdlp.Event)) error
}

// Request describes a download as entered in a front-end
type Request struct {
	URL             string
	Format          model.DownloadFormat
	OutputDir       string
	Playlist        bool
	ForceRedownload bool
}

// OptionsBuilder turns a request into the full yt-dlp options, folding in
// persisted settings (cookies, embedding) and PO-token extractor arguments
type OptionsBuilder func(Request) ytdlp.Options

// Downloader is the service surface the front-ends program against
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Enqueue(req Request) (*model.DownloadTask, error)
	Get(id string) (*model.DownloadTask, bool)
	All() []*model.DownloadTask
	Stop(id string) error
	StopAll()
}
