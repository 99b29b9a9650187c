// Package board ties a feed source to the task store: it runs loads, applies
// the sample-data fallback and exposes the view model to the commands.
package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/feed"
	"taskboard/internal/logger"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

// Service is what commands need from a board.
type Service interface {
	Refresh(ctx context.Context) error
	SetSource(src feed.Source)
	Source() feed.Source
	UsingSample() bool
	Tasks() []task.Task
	Sorted() []task.Task
	Resolve(ref string) (task.Task, bool)
	ToggleCompleted(id string) (task.Task, bool)
	IsBlocked(t task.Task) bool
	Timeline() (task.Range, []task.Bar)
	Now() time.Time
}

// Board implements Service over a store.Store.
type Board struct {
	store *store.Store
	norm  *task.Normalizer
	log   logger.Logger
	now   func() time.Time

	mu     sync.Mutex
	src    feed.Source
	sample bool
}

// Option configures a Board.
type Option func(*Board)

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(b *Board) { b.log = log }
}

// New returns a Board reading from src. A nil src means the sample board.
// Nothing is loaded until Refresh is called.
func New(src feed.Source, opts ...Option) *Board {
	b := &Board{
		store: store.New(),
		log:   logger.Discard(),
		now:   time.Now,
		src:   src,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.norm = task.NewNormalizer(b.now)
	return b
}

// Refresh replaces the task list with a fresh load. When the source fails the
// sample tasks are shown and the error is returned; a load overtaken by a
// newer one is dropped.
func (b *Board) Refresh(ctx context.Context) error {
	ticket := b.store.BeginLoad()
	src := b.Source()

	if src == nil {
		b.commit(ticket, SampleTasks(), true)
		b.log.Debug("no feed configured, showing sample tasks")
		return nil
	}

	rows, err := src.Rows(ctx)
	if err != nil {
		b.log.Warn("feed load failed", "source", src.String(), "err", err)
		b.commit(ticket, SampleTasks(), true)
		return fmt.Errorf("failed to load tasks from feed: %w", err)
	}

	tasks := b.norm.Normalize(rows)
	if len(tasks) == 0 {
		b.log.Warn("no valid tasks found in feed", "source", src.String(), "rows", len(rows))
	}
	if !b.commit(ticket, tasks, false) {
		b.log.Debug("dropped superseded load", "ticket", ticket)
		return nil
	}
	b.log.Debug("loaded tasks", "source", src.String(), "rows", len(rows), "tasks", len(tasks))
	return nil
}

func (b *Board) commit(ticket store.Ticket, tasks []task.Task, sample bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.store.CommitLoad(ticket, tasks) {
		return false
	}
	b.sample = sample
	return true
}

// SetSource switches the feed. The caller refreshes.
func (b *Board) SetSource(src feed.Source) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.src = src
}

// Source returns the current feed, nil when none is configured.
func (b *Board) Source() feed.Source {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.src
}

// UsingSample reports whether the shown tasks are the built-in sample.
func (b *Board) UsingSample() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sample
}

// Tasks returns the tasks in feed order.
func (b *Board) Tasks() []task.Task {
	return b.store.Tasks()
}

// Sorted returns the tasks by deadline.
func (b *Board) Sorted() []task.Task {
	return task.SortByDeadline(b.store.Tasks())
}

// Resolve finds a task by ID, then by exact name.
func (b *Board) Resolve(ref string) (task.Task, bool) {
	return task.Resolve(ref, b.store.Tasks())
}

// ToggleCompleted flips a task's completion for this session.
func (b *Board) ToggleCompleted(id string) (task.Task, bool) {
	t, ok := b.store.ToggleCompleted(id)
	if ok {
		b.log.Debug("toggled task", "id", id, "completed", t.Completed)
	}
	return t, ok
}

// IsBlocked reports whether t waits on an incomplete prerequisite.
func (b *Board) IsBlocked(t task.Task) bool {
	return task.IsBlocked(t, b.store.Tasks())
}

// Timeline returns the chart window and bars in feed order.
func (b *Board) Timeline() (task.Range, []task.Bar) {
	tasks := b.store.Tasks()
	r := task.TimelineRange(tasks, b.now())
	return r, task.Bars(tasks, r)
}

// Now returns the board's clock reading.
func (b *Board) Now() time.Time {
	return b.now()
}
