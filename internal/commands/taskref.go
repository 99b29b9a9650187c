package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"taskboard/internal/board"
	"taskboard/internal/task"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRefs splits args into task references.
//
// Parsing rules:
//  1. If every arg is all digits, each arg is an ID reference (done 1 4 5)
//  2. Otherwise args are joined with spaces and split on commas, so names
//     may contain spaces (done Chassis Design, 4)
//  3. Empty references are dropped; none at all is ErrTaskRefRequired
func ParseTaskRefs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}

	allDigits := true
	for _, a := range args {
		if !isAllDigits(a) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return args, nil
	}

	var refs []string
	for _, part := range strings.Split(strings.Join(args, " "), ",") {
		if part = strings.TrimSpace(part); part != "" {
			refs = append(refs, part)
		}
	}
	if len(refs) == 0 {
		return nil, ErrTaskRefRequired
	}
	return refs, nil
}

// ResolveTaskRefs resolves each reference by ID, then exact name. The first
// reference that matches nothing is reported.
func ResolveTaskRefs(b board.Service, refs []string) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(refs))
	for _, ref := range refs {
		t, ok := b.Resolve(ref)
		if !ok {
			return nil, fmt.Errorf("task not found: %s", ref)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
