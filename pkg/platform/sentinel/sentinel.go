package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so callers can decide between failing
// open, falling back or surfacing a domain error.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	// ErrUnavailable: backing service could not be reached or timed out.
	ErrUnavailable = errors.New("unavailable")
)
