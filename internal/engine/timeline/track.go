package timeline

import (
	"fmt"
)

// TrackType separates video and audio tracks.
type TrackType int

const (
	TrackVideo TrackType = iota
	TrackAudio
)

// Track owns an ordered sequence of segments covering [0, length)
// contiguously, with no gaps and no overlaps, mirrored index for index
// in the engine's native track. The clip list is unexported so the
// atomic operations on Sequence stay the only legal mutators.
type Track struct {
	ID   int
	Type TrackType

	clips  []*Clip
	engine EngineTrack
}

// Len returns the number of segments on the track.
func (t *Track) Len() int {
	return len(t.clips)
}

// Clip returns the segment at index. It panics on an out-of-range
// index, which is a programmer error per the edit preconditions.
func (t *Track) Clip(index int) *Clip {
	return t.clips[index]
}

// Clips returns a copy of the segment list for inspection.
func (t *Track) Clips() []*Clip {
	out := make([]*Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

// Length returns the track length in frames, as known to the engine.
func (t *Track) Length() int {
	return t.engine.Length()
}

// ClipStart returns the timeline frame where the segment at index
// begins.
func (t *Track) ClipStart(index int) int {
	return t.engine.ClipStart(index)
}

// ClipIndexAt returns the index of the segment containing frame, or
// Len() for a frame at or past the track end.
func (t *Track) ClipIndexAt(frame int) int {
	return t.engine.ClipIndexAt(frame)
}

// IndexOf returns the index of a clip on the track, or -1.
func (t *Track) IndexOf(c *Clip) int {
	for i, tc := range t.clips {
		if tc == c {
			return i
		}
	}
	return -1
}

// CheckConsistency verifies the track invariants against the engine
// mirror: equal segment counts, frame lengths that sum to the track
// length, and aligned segment starts. A failure means an atomic
// operation was only half applied, which is fatal.
func (t *Track) CheckConsistency() error {
	if got, want := t.engine.Count(), len(t.clips); got != want {
		return fmt.Errorf("track %d: %w: engine has %d segments, sequence has %d", t.ID, ErrDesync, got, want)
	}
	total := 0
	for i, c := range t.clips {
		if c.ClipOut < c.ClipIn {
			return fmt.Errorf("track %d: segment %d has negative length (in %d, out %d)", t.ID, i, c.ClipIn, c.ClipOut)
		}
		if start := t.engine.ClipStart(i); start != total {
			return fmt.Errorf("track %d: %w: segment %d starts at %d in engine, %d in sequence", t.ID, ErrDesync, i, start, total)
		}
		total += c.Length()
	}
	if length := t.engine.Length(); length != total {
		return fmt.Errorf("track %d: %w: engine length %d, segment sum %d", t.ID, ErrDesync, length, total)
	}
	return nil
}
