package platform

// Package platform holds the OS-facing helpers: directory management,
// incomplete-download sweeping, and revealing finished files in the system
// file manager.
