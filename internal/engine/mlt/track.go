package mlt

import (
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// entry is one native segment. The engine keeps its own copy of the
// bounds rather than reading the timeline clip, so a divergence between
// the two representations is observable.
type entry struct {
	clip  *timeline.Clip // nil for blanks
	in    int
	out   int // inclusive
	blank bool
}

func (e *entry) length() int {
	return e.out - e.in + 1
}

// Track implements timeline.EngineTrack.
type Track struct {
	entries []*entry
}

// Append adds a clip at the end of the track.
func (t *Track) Append(c *timeline.Clip, in, out int) {
	t.entries = append(t.entries, &entry{clip: c, in: in, out: out})
}

// Insert adds a clip at index.
func (t *Track) Insert(c *timeline.Clip, index, in, out int) {
	t.insertEntry(index, &entry{clip: c, in: in, out: out})
}

// InsertBlank adds a gap at index. outFrame is the blank's last frame,
// i.e. length - 1.
func (t *Track) InsertBlank(index, outFrame int) {
	t.insertEntry(index, &entry{in: 0, out: outFrame, blank: true})
}

func (t *Track) insertEntry(index int, e *entry) {
	t.entries = append(t.entries, nil)
	copy(t.entries[index+1:], t.entries[index:])
	t.entries[index] = e
}

// Remove deletes the segment at index.
func (t *Track) Remove(index int) {
	t.entries = append(t.entries[:index], t.entries[index+1:]...)
}

// SetInAndOut resizes the segment at index in place.
func (t *Track) SetInAndOut(index, in, out int) {
	t.entries[index].in = in
	t.entries[index].out = out
}

// ClipStart returns the timeline frame where the segment at index
// begins.
func (t *Track) ClipStart(index int) int {
	start := 0
	for i := 0; i < index; i++ {
		start += t.entries[i].length()
	}
	return start
}

// ClipIndexAt returns the index of the segment containing frame, or
// Count() for a frame at or past the track end.
func (t *Track) ClipIndexAt(frame int) int {
	start := 0
	for i, e := range t.entries {
		start += e.length()
		if frame < start {
			return i
		}
	}
	return len(t.entries)
}

// Length returns the track length in frames.
func (t *Track) Length() int {
	total := 0
	for _, e := range t.entries {
		total += e.length()
	}
	return total
}

// Count returns the number of segments.
func (t *Track) Count() int {
	return len(t.entries)
}
