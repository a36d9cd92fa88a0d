package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure. Every stage-level failure is
// converted to a user-visible message at the top level and halts the load.
type ErrorKind int

const (
	ErrFetch ErrorKind = iota + 1
	ErrParse
	ErrPipeline
)

// StageError wraps an underlying error with the stage that raised it.
type StageError struct {
	Kind  ErrorKind
	Stage string // e.g. "polygon file", "spreadsheet"
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FetchError marks a download failure (transport error or non-2xx status).
func FetchError(stage string, err error) error {
	return &StageError{Kind: ErrFetch, Stage: stage, Err: err}
}

// ParseError marks malformed geometry or spreadsheet content.
func ParseError(stage string, err error) error {
	return &StageError{Kind: ErrParse, Stage: stage, Err: err}
}

// PipelineError marks an unexpected failure in join, filter or render.
func PipelineError(stage string, err error) error {
	return &StageError{Kind: ErrPipeline, Stage: stage, Err: err}
}

// KindOf returns the error kind, or ErrPipeline for unclassified errors.
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ErrPipeline
}
