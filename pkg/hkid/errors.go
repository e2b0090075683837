package hkid

import (
	"errors"
	"fmt"

	dErrors "hkid-gateway/pkg/domain-errors"
)

// Sentinel errors for the failure taxonomy. Returned errors wrap exactly one
// of these and also carry a domain error code, so both errors.Is and
// dErrors.HasCode work on them.
var (
	// ErrFormatRejected: input does not match the required shape.
	ErrFormatRejected = errors.New("hkid format rejected")
	// ErrUnknownPrefix: prefix is well formed but not a documented code
	// while the caller asked for known prefixes only.
	ErrUnknownPrefix = errors.New("hkid prefix not recognized")
	// ErrNoKnownPrefixes: the known prefix table is empty.
	ErrNoKnownPrefixes = errors.New("no known hkid prefixes")
	// ErrChecksumFailure: the check digit could not be computed for a body
	// that already passed validation.
	ErrChecksumFailure = errors.New("hkid check digit computation failed")
)

func formatRejected(format string, args ...any) error {
	return dErrors.Wrap(ErrFormatRejected, dErrors.CodeInvalidInput, fmt.Sprintf(format, args...))
}

func unknownPrefix(prefix string) error {
	return dErrors.Wrap(ErrUnknownPrefix, dErrors.CodeValidation, fmt.Sprintf("prefix '%s' is not recognized", prefix))
}

func checksumFailure(body string) error {
	return dErrors.Wrap(ErrChecksumFailure, dErrors.CodeInternal, fmt.Sprintf("failed to calculate check digit for body '%s'", body))
}

func noKnownPrefixes() error {
	return dErrors.Wrap(ErrNoKnownPrefixes, dErrors.CodeInvariantViolation, "no valid prefixes to choose from")
}
