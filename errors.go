package semver

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the kind of failure, so callers can use
// errors.Is instead of string matching. See spec section 7 for the kind
// taxonomy.
var (
	// ErrParseFailure means the input did not match the version or range
	// grammar.
	ErrParseFailure = errors.New("semver: parse failure")
	// ErrOutOfRange means a numeric field exceeded the safe-integer cap, or
	// the input exceeded the length cap.
	ErrOutOfRange = errors.New("semver: value out of range")
	// ErrInvalidArgument means a structurally valid call was made with a
	// nonsensical combination of arguments (e.g. Inc("release") on a
	// non-prerelease version).
	ErrInvalidArgument = errors.New("semver: invalid argument")
	// ErrTypeMismatch means an operation expecting a Comparator was given a
	// Range, or vice versa.
	ErrTypeMismatch = errors.New("semver: type mismatch")
)

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParseFailure, fmt.Sprintf(format, args...))
}

func rangeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, args...))
}

func argErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
