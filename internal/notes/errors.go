package notes

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput    = errors.New("missing input")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTooLarge        = errors.New("too large")
	ErrUpstream        = errors.New("upstream failure")
)

// Stage names a step of the conversion pipeline.
type Stage string

const (
	StageTranscription Stage = "transcription"
	StageNotes         Stage = "note generation"
)

// UpstreamError wraps a failure of one of the external services.
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
