package cli

// Package cli implements the non-interactive front-end used for scripting.
// It downloads a single URL passed on the command line, prints progress to
// stdout, and reports failure through the process exit code.
