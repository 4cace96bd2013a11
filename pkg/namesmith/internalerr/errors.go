package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnderflow       = errors.New("letter not available")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrCorpusMissing   = errors.New("corpus files missing")
)
