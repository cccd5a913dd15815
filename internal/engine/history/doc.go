// Package history provides the undo/redo stack for timeline edit
// actions. Actions are pushed after their first forward run; Undo and
// Redo replay them in LIFO order. New edits clear the redo stack.
package history
