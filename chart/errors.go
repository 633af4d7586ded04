package chart

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A *DecodeError matches its kind through errors.Is.
var (
	ErrMalformedJSON        = errors.New("malformed json")
	ErrInvalidBpm           = errors.New("invalid bpm")
	ErrInvalidOffset        = errors.New("invalid offset")
	ErrInvalidTimeSignature = errors.New("invalid time signature")
	ErrInvalidColorIndex    = errors.New("invalid color index")
	ErrInvalidColorTable    = errors.New("invalid color table")
	ErrInvalidShapeKind     = errors.New("invalid shape kind")
	ErrInvalidScale         = errors.New("invalid scale")
)

// DecodeError reports why a chart could not be decoded. Field is the path of
// the offending value, e.g. "header.bpm" or "shapes[2].auto_shapes[0].shape".
type DecodeError struct {
	Kind  error
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := "chart: " + e.Kind.Error()
	if e.Field != "" {
		msg += " at " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func decodeErr(kind error, field string, err error) *DecodeError {
	return &DecodeError{Kind: kind, Field: field, Err: err}
}

func decodeErrf(kind error, field string, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Field: field, Err: fmt.Errorf(format, args...)}
}
