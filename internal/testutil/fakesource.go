// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"maps"
	"sync"

	"taskboard/internal/task"
)

// FakeSource is an in-memory feed.Source for testing.
type FakeSource struct {
	mu    sync.Mutex
	rows  []task.Row
	calls int

	// Name is returned by String.
	Name string

	// Err, when set, is returned by Rows instead of the rows.
	Err error

	// Gate, when set, makes Rows block until a value is received or ctx ends.
	Gate chan struct{}
}

// NewFakeSource creates a FakeSource serving rows.
func NewFakeSource(rows ...task.Row) *FakeSource {
	return &FakeSource{rows: rows, Name: "fake"}
}

// SetRows replaces the rows served by later calls.
func (f *FakeSource) SetRows(rows ...task.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
}

// Calls returns how many times Rows was called.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Rows implements feed.Source.
func (f *FakeSource) Rows(ctx context.Context) ([]task.Row, error) {
	f.mu.Lock()
	f.calls++
	rows, err, gate := f.rows, f.Err, f.Gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	out := make([]task.Row, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}
	return out, nil
}

func (f *FakeSource) String() string {
	return f.Name
}
