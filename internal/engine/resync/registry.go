package resync

import (
	"sort"
	"sync"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// Registry tracks every child clip that carries a sync binding. It
// implements both the sequence's sync observer and the resync data
// source the edit package consumes.
type Registry struct {
	mu  sync.Mutex
	seq *timeline.Sequence

	// children maps each bound child clip to the track it lived on when
	// registered. The track entry is refreshed on lookup since edits
	// can move clips between tracks.
	children map[*timeline.Clip]*timeline.Track
}

// NewRegistry creates a registry bound to seq and installs it as the
// sequence's sync observer.
func NewRegistry(seq *timeline.Sequence) *Registry {
	r := &Registry{
		seq:      seq,
		children: make(map[*timeline.Clip]*timeline.Track),
	}
	seq.SetSyncObserver(r)
	return r
}

// ClipAdded registers c as a sync child on track t.
func (r *Registry) ClipAdded(c *timeline.Clip, t *timeline.Track) {
	if c == nil || c.SyncData == nil {
		return
	}
	r.mu.Lock()
	r.children[c] = t
	r.mu.Unlock()
}

// ClipRemoved clears the sync bindings of any children mastered by c.
// The removed clip itself stays registered if it carries sync data; a
// later undo can put it back on the timeline.
func (r *Registry) ClipRemoved(c *timeline.Clip) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for child := range r.children {
		if child.SyncData != nil && child.SyncData.MasterClip == c {
			child.SyncData.State = timeline.SyncNone
		}
	}
}

// ClipSyncCleared drops c from the registry.
func (r *Registry) ClipSyncCleared(c *timeline.Clip) {
	r.mu.Lock()
	delete(r.children, c)
	r.mu.Unlock()
}

// RecalculateStates refreshes every child's SyncState by comparing its
// current offset from its master against the recorded one. Children no
// longer on the timeline are dropped.
func (r *Registry) RecalculateStates() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for child := range r.children {
		sd := child.SyncData
		if sd == nil {
			delete(r.children, child)
			continue
		}
		track, _, ok := r.seq.FindClip(child)
		if !ok {
			continue
		}
		r.children[child] = track

		offset, ok := r.currentOffset(child, track)
		if !ok {
			sd.State = timeline.SyncNone
			continue
		}
		if offset == sd.PosOffset {
			sd.State = timeline.SyncCorrect
		} else {
			sd.State = timeline.SyncDrifted
		}
	}
}

// currentOffset computes the child's present offset from its master.
// Both clips must be on the timeline. Caller holds the lock.
func (r *Registry) currentOffset(child *timeline.Clip, childTrack *timeline.Track) (int, bool) {
	sd := child.SyncData
	if sd == nil || sd.MasterClip == nil {
		return 0, false
	}
	masterTrack, masterIndex, ok := r.seq.FindClip(sd.MasterClip)
	if !ok {
		return 0, false
	}
	childIndex := childTrack.IndexOf(child)
	if childIndex < 0 {
		return 0, false
	}
	childStart := childTrack.ClipStart(childIndex) - child.ClipIn
	masterStart := masterTrack.ClipStart(masterIndex) - sd.MasterClip.ClipIn
	return childStart - masterStart, true
}

// DataList returns resync data for every registered child currently on
// the timeline, ordered by track then position.
func (r *Registry) DataList() []timeline.ResyncData {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []timeline.ResyncData
	for child := range r.children {
		if d, ok := r.dataFor(child); ok {
			list = append(list, d)
		}
	}
	sortResyncData(list)
	return list
}

// DataListForClips returns resync data for the given clips only,
// ordered by track then position. Clips without a sync binding are
// skipped.
func (r *Registry) DataListForClips(clips []*timeline.Clip) []timeline.ResyncData {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []timeline.ResyncData
	for _, child := range clips {
		if _, registered := r.children[child]; !registered {
			continue
		}
		if d, ok := r.dataFor(child); ok {
			list = append(list, d)
		}
	}
	sortResyncData(list)
	return list
}

// dataFor builds the resync record for one child: its track, index and
// the offset it currently sits at. Caller holds the lock.
func (r *Registry) dataFor(child *timeline.Clip) (timeline.ResyncData, bool) {
	track, index, ok := r.seq.FindClip(child)
	if !ok {
		return timeline.ResyncData{}, false
	}
	offset, ok := r.currentOffset(child, track)
	if !ok {
		return timeline.ResyncData{}, false
	}
	return timeline.ResyncData{
		Clip:      child,
		Track:     track,
		Index:     index,
		PosOffset: offset,
	}, true
}

// Children returns the registered child clips.
func (r *Registry) Children() []*timeline.Clip {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*timeline.Clip, 0, len(r.children))
	for c := range r.children {
		out = append(out, c)
	}
	return out
}

func sortResyncData(list []timeline.ResyncData) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Track.ID != list[j].Track.ID {
			return list[i].Track.ID < list[j].Track.ID
		}
		return list[i].Index < list[j].Index
	})
}
