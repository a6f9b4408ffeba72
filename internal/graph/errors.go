package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSeries indicates a series that was never added to the graph.
	ErrUnknownSeries = errors.New("graph: series not in graph")

	// ErrKindMismatch indicates a series of another kind than the graph.
	ErrKindMismatch = errors.New("graph: series kind does not match graph")

	// ErrDuplicateSeries indicates a series added twice.
	ErrDuplicateSeries = errors.New("graph: series already added")

	// ErrClosed indicates use of a graph after Close.
	ErrClosed = errors.New("graph: closed")
)

// SeriesError wraps an error with the series and operation it came from.
type SeriesError struct {
	Series  string
	Op      string
	Wrapped error
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("%s series %q: %v", e.Op, e.Series, e.Wrapped)
}

func (e *SeriesError) Unwrap() error {
	return e.Wrapped
}
