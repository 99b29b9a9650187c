package task

import "fmt"

// SourceFormatError reports feed text that cannot be read as a table.
type SourceFormatError struct {
	Line int // 0 when the error is not tied to a line
	Err  error
}

func (e *SourceFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("feed is not a valid table (line %d): %v", e.Line, e.Err)
	}
	return fmt.Sprintf("feed is not a valid table: %v", e.Err)
}

func (e *SourceFormatError) Unwrap() error {
	return e.Err
}

// FetchError reports a feed that could not be retrieved.
type FetchError struct {
	Source string // URL or spreadsheet the fetch was aimed at
	Status int    // HTTP status, 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.Source, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetching %s: HTTP %d", e.Source, e.Status)
	default:
		return fmt.Sprintf("fetching %s: %v", e.Source, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
