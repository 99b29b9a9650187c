// Package store holds the session's task list. The list is replaced
// wholesale on every load; toggling completion is the only edit in between.
package store

import (
	"sync"

	"taskboard/internal/task"
)

// Ticket identifies one load attempt. Tickets increase with every BeginLoad.
type Ticket uint64

// Store is the single task-list slot shared by every view.
type Store struct {
	mu      sync.RWMutex
	tasks   []task.Task
	latest  Ticket
	applied Ticket
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Tasks returns a copy of the current list in load order.
func (s *Store) Tasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return task.CloneAll(s.tasks)
}

// ReplaceAll swaps in a new list unconditionally and supersedes every load
// still in flight.
func (s *Store) ReplaceAll(tasks []task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.applied = s.latest
	s.tasks = task.CloneAll(tasks)
}

// BeginLoad registers a new load and returns its ticket.
func (s *Store) BeginLoad() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// CommitLoad stores the result of the load identified by t. It returns false,
// leaving the list untouched, when a later load has started since t was issued.
func (s *Store) CommitLoad(t Ticket, tasks []task.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.latest || t <= s.applied {
		return false
	}
	s.applied = t
	s.tasks = task.CloneAll(tasks)
	return true
}

// ToggleCompleted flips the completed flag of the task with the given ID and
// returns the updated task.
func (s *Store) ToggleCompleted(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			return s.tasks[i].Clone(), true
		}
	}
	return task.Task{}, false
}
