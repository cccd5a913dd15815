// Package mlt is an in-memory implementation of the media engine
// contract. It stands in for the native playback engine's track and
// transition structures, keeping its own segment bookkeeping so the
// dual-representation invariants can be exercised without the real
// engine present.
package mlt

import (
	"github.com/google/uuid"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// Engine implements timeline.Engine over plain slices and maps.
type Engine struct {
	tracks      []*Track
	attachments map[uuid.UUID][]uuid.UUID
	transitions map[uuid.UUID]*transition
}

type transition struct {
	aTrack, bTrack int
	in, out        int
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		attachments: make(map[uuid.UUID][]uuid.UUID),
		transitions: make(map[uuid.UUID]*transition),
	}
}

// AddTrack creates a new native track.
func (e *Engine) AddTrack() timeline.EngineTrack {
	t := &Track{}
	e.tracks = append(e.tracks, t)
	return t
}

// AttachFilter records an engine-side filter attachment.
func (e *Engine) AttachFilter(clipID, filterID uuid.UUID) {
	e.attachments[clipID] = append(e.attachments[clipID], filterID)
}

// DetachFilter removes an engine-side filter attachment.
func (e *Engine) DetachFilter(clipID, filterID uuid.UUID) {
	list := e.attachments[clipID]
	for i, id := range list {
		if id == filterID {
			e.attachments[clipID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// AttachedFilters returns a clip's attachment list in order.
func (e *Engine) AttachedFilters(clipID uuid.UUID) []uuid.UUID {
	list := e.attachments[clipID]
	out := make([]uuid.UUID, len(list))
	copy(out, list)
	return out
}

// AddTransition mirrors a live compositor.
func (e *Engine) AddTransition(destroyID uuid.UUID, aTrack, bTrack, in, out int) {
	e.transitions[destroyID] = &transition{aTrack: aTrack, bTrack: bTrack, in: in, out: out}
}

// RemoveTransition drops a mirrored compositor.
func (e *Engine) RemoveTransition(destroyID uuid.UUID) {
	delete(e.transitions, destroyID)
}

// TransitionCount returns the number of live transitions.
func (e *Engine) TransitionCount() int {
	return len(e.transitions)
}
