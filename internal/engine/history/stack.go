package history

import (
	"errors"
	"sync"
	"time"

	"github.com/ptrg/flowblade/internal/engine/edit"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry wraps an action with metadata.
type entry struct {
	action    *edit.Action
	timestamp time.Time
}

// Stack manages undo/redo state for a sequence. Actions land here after
// their first forward run; undo pops and runs backward, redo re-runs
// forward.
type Stack struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	maxEntries int
}

// NewStack creates a history stack holding at most maxEntries actions.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Stack{maxEntries: maxEntries}
}

// Execute runs an action's first forward operation and pushes it.
func (s *Stack) Execute(a *edit.Action, ctx *edit.Context) error {
	if err := a.Do(ctx); err != nil {
		return err
	}
	s.Push(a)
	return nil
}

// Push adds an already-executed action to the undo stack and clears the
// redo stack.
func (s *Stack) Push(a *edit.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undoStack = append(s.undoStack, &entry{action: a, timestamp: time.Now()})
	s.redoStack = nil

	if len(s.undoStack) > s.maxEntries {
		excess := len(s.undoStack) - s.maxEntries
		s.undoStack = s.undoStack[excess:]
	}
}

// Undo undoes the most recent action. The lock is released during the
// action run; a failed undo puts the entry back.
func (s *Stack) Undo(ctx *edit.Context) error {
	s.mu.Lock()
	if len(s.undoStack) == 0 {
		s.mu.Unlock()
		return ErrNothingToUndo
	}
	e := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.mu.Unlock()

	if err := e.action.Undo(ctx); err != nil {
		s.mu.Lock()
		s.undoStack = append(s.undoStack, e)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.redoStack = append(s.redoStack, e)
	s.mu.Unlock()
	return nil
}

// Redo re-runs the most recently undone action. A failed redo puts the
// entry back.
func (s *Stack) Redo(ctx *edit.Context) error {
	s.mu.Lock()
	if len(s.redoStack) == 0 {
		s.mu.Unlock()
		return ErrNothingToRedo
	}
	e := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.mu.Unlock()

	if err := e.action.Redo(ctx); err != nil {
		s.mu.Lock()
		s.redoStack = append(s.redoStack, e)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.undoStack = append(s.undoStack, e)
	s.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack) > 0
}

// UndoCount returns the number of undoable actions.
func (s *Stack) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack)
}

// RedoCount returns the number of redoable actions.
func (s *Stack) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack)
}

// OperationInfo describes one history entry.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// UndoInfo returns info about the undo stack, oldest first.
func (s *Stack) UndoInfo() []OperationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]OperationInfo, len(s.undoStack))
	for i, e := range s.undoStack {
		result[i] = OperationInfo{Description: e.action.Description(), Timestamp: e.timestamp}
	}
	return result
}

// PeekUndo returns info about the next undo without removing it.
func (s *Stack) PeekUndo() (OperationInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undoStack) == 0 {
		return OperationInfo{}, false
	}
	e := s.undoStack[len(s.undoStack)-1]
	return OperationInfo{Description: e.action.Description(), Timestamp: e.timestamp}, true
}

// Clear removes all history.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoStack = nil
	s.redoStack = nil
}

// SetMaxEntries changes the history depth, trimming oldest entries if
// needed.
func (s *Stack) SetMaxEntries(max int) {
	if max <= 0 {
		max = 1000
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = max
	if len(s.undoStack) > max {
		excess := len(s.undoStack) - max
		s.undoStack = s.undoStack[excess:]
	}
}
