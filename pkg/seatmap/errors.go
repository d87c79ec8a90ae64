package seatmap

import "errors"

// Sentinel errors returned by seatmap operations.
//
// Callers should use [errors.Is] to check error types.
var (
	// ErrMalformedRow indicates a manifest row that cannot be indexed:
	// wrong column count or an id that is not a number.
	//
	// The whole manifest is rejected; an index is never built from part of it.
	ErrMalformedRow = errors.New("seatmap: malformed manifest row")

	// ErrInconsistentIndex indicates a section id without a row table.
	//
	// Indexes built by [Build] cannot produce this. It signals an index
	// assembled some other way and should be treated as a bug.
	ErrInconsistentIndex = errors.New("seatmap: inconsistent index")
)
