package unorm

import "github.com/normform/unorm/unormdata"

// Error sentinels re-exported from unormdata so callers of this package
// never need to import unormdata directly just to errors.Is a failure mode.
var (
	ErrInvalidFormat   = unormdata.ErrInvalidFormat
	ErrOutOfMemory     = unormdata.ErrOutOfMemory
	ErrInvalidArgument = unormdata.ErrInvalidArgument
)
