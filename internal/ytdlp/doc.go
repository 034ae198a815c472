package ytdlp

// Package ytdlp builds command lines for the external yt-dlp executable, runs
// it as a supervised subprocess and parses its stdout progress lines. All
// format negotiation, network access and muxing stays inside yt-dlp and
// FFmpeg; this package is deliberately only glue.
