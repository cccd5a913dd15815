package timeline

import (
	"github.com/google/uuid"
)

// Compositor is a transition entity spanning a frame range on two
// tracks. The engine rebuilds compositors whenever stacking is
// recalculated, so object identity is not stable across edits; the
// DestroyID survives every rebuild and is the only safe handle for
// undo/redo bookkeeping.
type Compositor struct {
	// DestroyID is preserved across engine-side recreation.
	DestroyID uuid.UUID

	// Kind names the transition type (dissolve, wipe, ...).
	Kind string

	// OriginClipID links the compositor to the clip it was created for.
	OriginClipID uuid.UUID

	In  int
	Out int

	ATrack int
	BTrack int

	Props map[string]string
}

// SetInAndOut moves the compositor's frame range.
func (c *Compositor) SetInAndOut(in, out int) {
	c.In = in
	c.Out = out
}

// SetTracks binds the compositor to its source and destination tracks.
func (c *Compositor) SetTracks(aTrack, bTrack int) {
	c.ATrack = aTrack
	c.BTrack = bTrack
}

// CloneProperties copies another compositor's state, including its
// DestroyID so the clone answers for the original in undo/redo lookups.
func (c *Compositor) CloneProperties(from *Compositor) {
	c.DestroyID = from.DestroyID
	c.Kind = from.Kind
	c.OriginClipID = from.OriginClipID
	c.Props = make(map[string]string, len(from.Props))
	for k, v := range from.Props {
		c.Props[k] = v
	}
}
