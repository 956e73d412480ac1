package typology

import (
	"errors"

	"github.com/jamesainslie/go-typology/split"
	"github.com/jamesainslie/go-typology/table"
	"github.com/jamesainslie/go-typology/wals"
)

// Sentinel errors for conditions callers may need to handle differently.
// Every one of them is fatal for a run.
var (
	// ErrMalformedRow indicates a table row with fewer than ten fields.
	ErrMalformedRow = table.ErrMalformedRow

	// ErrMalformedIdentifier indicates an identifier shorter than the join key.
	ErrMalformedIdentifier = table.ErrMalformedIdentifier

	// ErrTableNotFound indicates the source has no table for a domain.
	ErrTableNotFound = wals.ErrTableNotFound

	// ErrInvalidRatios indicates unusable split proportions.
	ErrInvalidRatios = split.ErrInvalidRatios

	// ErrOutputWrite indicates an output file could not be created or written.
	ErrOutputWrite = errors.New("typology: output write failed")

	// ErrNoSource indicates a Generator was created without a table source.
	ErrNoSource = errors.New("typology: no table source")
)
