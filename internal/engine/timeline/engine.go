package timeline

import (
	"github.com/google/uuid"
)

// EngineTrack is the per-track surface of the media engine's native
// segment list. Every atomic operation in this package mutates the
// engine track and the Track's own clip list together, index for
// index; nothing else may touch either.
//
// Frame queries are answered by the engine because its structure is
// authoritative for playback.
type EngineTrack interface {
	// Append adds a clip at the end of the track.
	Append(c *Clip, in, out int)

	// Insert adds a clip at index.
	Insert(c *Clip, index, in, out int)

	// InsertBlank adds a gap at index. The engine API takes the last
	// frame of the blank, i.e. length - 1.
	InsertBlank(index, outFrame int)

	// Remove deletes the segment at index.
	Remove(index int)

	// SetInAndOut resizes the segment at index in place.
	SetInAndOut(index, in, out int)

	// ClipStart returns the timeline frame where the segment at index
	// begins.
	ClipStart(index int) int

	// ClipIndexAt returns the index of the segment containing frame.
	// For a frame at or past the track end it returns Count().
	ClipIndexAt(frame int) int

	// Length returns the track length in frames.
	Length() int

	// Count returns the number of segments.
	Count() int
}

// Engine is the sequence-level surface of the media engine: track
// creation, filter attachment and transitions. Compositor stacking
// lives on the Sequence; the engine only mirrors the live transitions.
type Engine interface {
	// AddTrack creates a new native track.
	AddTrack() EngineTrack

	// AttachFilter adds an engine-side filter attachment for a clip.
	AttachFilter(clipID, filterID uuid.UUID)

	// DetachFilter removes an engine-side filter attachment.
	DetachFilter(clipID, filterID uuid.UUID)

	// AttachedFilters returns the engine-side attachment list for a
	// clip, in attachment order.
	AttachedFilters(clipID uuid.UUID) []uuid.UUID

	// AddTransition mirrors a live compositor.
	AddTransition(destroyID uuid.UUID, aTrack, bTrack, in, out int)

	// RemoveTransition drops a mirrored compositor.
	RemoveTransition(destroyID uuid.UUID)

	// TransitionCount returns the number of live transitions.
	TransitionCount() int
}

// SyncObserver is notified when clips enter or leave the timeline and
// recomputes child-clip sync states after every edit. The resync
// package provides the real implementation.
type SyncObserver interface {
	ClipAdded(c *Clip, t *Track)
	ClipRemoved(c *Clip)
	ClipSyncCleared(c *Clip)

	// RecalculateStates refreshes the SyncState of every registered
	// child clip.
	RecalculateStates()
}

// ResyncData describes one child clip and the offset it should have to
// stay in sync with its master.
type ResyncData struct {
	Clip      *Clip
	Track     *Track
	Index     int
	PosOffset int
}
