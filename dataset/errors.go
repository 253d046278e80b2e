package dataset

import (
	"errors"
	"fmt"
)

// Kind classifies ingestion failures.
type Kind int

const (
	FileNotFound Kind = iota
	// NoTimeColumn is never returned by Load: a missing candidate header
	// falls back to the first column. It exists so callers can name it.
	NoTimeColumn
	NoNumericSeries
	ParseError
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case NoTimeColumn:
		return "no time column"
	case NoNumericSeries:
		return "no numeric series"
	case ParseError:
		return "parse error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against an *IngestError.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrNoTimeColumn    = errors.New("no time column")
	ErrNoNumericSeries = errors.New("no numeric series")
	ErrParse           = errors.New("parse error")
)

// IngestError is returned by Load for every failure.
type IngestError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNoNumericSeries) and friends work without the
// caller type-asserting.
func (e *IngestError) Is(target error) bool {
	switch target {
	case ErrFileNotFound:
		return e.Kind == FileNotFound
	case ErrNoTimeColumn:
		return e.Kind == NoTimeColumn
	case ErrNoNumericSeries:
		return e.Kind == NoNumericSeries
	case ErrParse:
		return e.Kind == ParseError
	}
	return false
}

func ingestErr(kind Kind, path string, err error) error {
	return &IngestError{Kind: kind, Path: path, Err: err}
}
