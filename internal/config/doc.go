package config

// Package config persists user preferences as a JSON settings file. Missing
// keys fall back to defaults and the file is created on first run. The
// pot_provider block configures the Docker-managed Proof-of-Origin token
// provider.
