package service

import "errors"

var (
	// ErrNotLoaded is returned by mutations issued before Load has run.
	ErrNotLoaded = errors.New("application state not loaded")
	// ErrNotFound is returned when an id matches nothing. State is unchanged.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for rejected user input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStaleResult is returned when an assistant answer arrives for a
	// request that has since been superseded or whose target is gone.
	ErrStaleResult = errors.New("stale assistant result")
	// ErrAssistUnavailable is returned when no assistant is configured.
	ErrAssistUnavailable = errors.New("assistant unavailable")
	// ErrAssistFailed wraps a failed assistant call.
	ErrAssistFailed = errors.New("assistant request failed")
)
