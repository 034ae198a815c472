package ui

// Package ui implements the Fyne desktop front-end. The main window holds a
// URL entry with format selection, a task list with per-row progress, and a
// settings dialog backed by the persisted configuration.
