package unormdata

import "errors"

// Error taxonomy: a validation failure on the raw data, an allocation
// failure while growing a buffer, and a caller passing a poisoned argument.
// Entry points wrap these with fmt.Errorf("...: %w", ...) so callers can
// still errors.Is against the sentinel.
var (
	// ErrInvalidFormat is returned when the header tag/version/endianness
	// doesn't match, the indexes array is too short, or the trie fails to
	// deserialize.
	ErrInvalidFormat = errors.New("unormdata: invalid format")

	// ErrOutOfMemory is returned when a buffer cannot grow to hold the
	// requested output.
	ErrOutOfMemory = errors.New("unormdata: out of memory")

	// ErrInvalidArgument is returned when the caller passes a bogus output
	// destination to an append-style entry point.
	ErrInvalidArgument = errors.New("unormdata: invalid argument")
)
