package download

// Package download implements the task service shared by all front-ends. It
// queues download requests, runs at most one yt-dlp subprocess at a time on
// a background goroutine, propagates progress to the active UI through a
// callback, and sweeps incomplete files when a download is stopped.
