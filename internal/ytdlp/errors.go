package ytdlp

import "strings"

// FriendlyMessage maps a raw yt-dlp failure to an actionable message for the
// status line. The raw error stays in the logs.
func FriendlyMessage(errMsg string) string {
	msg := strings.ToLower(errMsg)

	switch {
	case strings.Contains(msg, "http error 403"), strings.Contains(msg, "forbidden"):
		return "YouTube is blocking the download (HTTP 403 Forbidden). " +
			"Try using browser cookies or wait a few hours before retrying."
	case strings.Contains(msg, "po token"):
		return "YouTube's Proof of Origin (PO) token system is blocking access. " +
			"Try using browser cookies from a logged-in session."
	case strings.Contains(msg, "no request handlers configured"):
		return "YouTube request handler configuration error. " +
			"Update yt-dlp or use browser cookies."
	case strings.Contains(msg, "video unavailable"):
		return "The video is not available (deleted, private or region-locked)."
	case strings.Contains(msg, "not available on this app"):
		return "Content not available on this application (geo/licensing)."
	case strings.Contains(msg, "unable to download format"),
		strings.Contains(msg, "requested format is not available"):
		return "Could not find a suitable format to download."
	case strings.Contains(msg, "ffmpeg") && strings.Contains(msg, "not"):
		return "FFmpeg was not found. Install it and make sure it is on your PATH."
	case strings.Contains(msg, "executable file not found"):
		return "yt-dlp was not found. Install it and make sure it is on your PATH."
	default:
		return "Download failed. Try using browser cookies or updating yt-dlp."
	}
}

// FFmpegInstructions returns per-OS installation guidance shown when FFmpeg
// is missing
func FFmpegInstructions(goos string) string {
	switch strings.ToLower(goos) {
	case "windows":
		return "FFmpeg installation for Windows:\n" +
			"1. Download from https://ffmpeg.org/download.html#build-windows\n" +
			"2. Extract (e.g. C:\\ffmpeg) and add bin to PATH\n" +
			"3. Restart the terminal and verify with: ffmpeg -version"
	case "darwin":
		return "FFmpeg installation for macOS:\n" +
			"1. Install Homebrew: https://brew.sh\n" +
			"2. brew install ffmpeg\n" +
			"3. Verify with: ffmpeg -version"
	default:
		return "FFmpeg installation for Linux:\n" +
			"Ubuntu/Debian: sudo apt update && sudo apt install ffmpeg\n" +
			"Fedora: sudo dnf install ffmpeg\n" +
			"Arch: sudo pacman -S ffmpeg\n" +
			"Verify with: ffmpeg -version"
	}
}
