package terminal

// Package terminal implements the interactive console front-end. It reads
// URLs from stdin in a prompt loop and renders the active download as a
// single self-updating progress line using ANSI escapes.
