package model

// Package model defines the domain data structures shared by all three
// front-ends: download tasks and their status state machine. Structures are
// designed for direct rendering in the UI and explicit state transitions.
