package types

import "errors"

// Error taxonomy shared by every feature package. Callers wrap these with
// fmt.Errorf("...: %w", ErrX) and handlers classify them with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrAuth        = errors.New("authentication failed")
	ErrForbidden   = errors.New("access denied")
	ErrNotFound    = errors.New("resource not found")
	ErrConflict    = errors.New("resource already exists")
	ErrUpstream    = errors.New("upstream service error")
	ErrPersistence = errors.New("persistence error")
	ErrGeneration  = errors.New("recommendation generation failed")
)
