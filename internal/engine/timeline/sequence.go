package timeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common errors for timeline operations.
var (
	// ErrDesync means the sequence bookkeeping and the engine's native
	// structures have diverged. It is never masked; an atomic operation
	// was only half applied.
	ErrDesync = errors.New("sequence and engine representations diverged")

	// ErrEmptyTrack is returned by operations that need at least one
	// segment.
	ErrEmptyTrack = errors.New("track is empty")

	// ErrNoCompositor is returned when a destroy id resolves to no live
	// compositor.
	ErrNoCompositor = errors.New("no compositor for destroy id")
)

// nopSyncObserver is used until a real observer is registered.
type nopSyncObserver struct{}

func (nopSyncObserver) ClipAdded(*Clip, *Track) {}
func (nopSyncObserver) ClipRemoved(*Clip)       {}
func (nopSyncObserver) ClipSyncCleared(*Clip)   {}
func (nopSyncObserver) RecalculateStates()      {}

// Sequence owns the tracks of one timeline, the compositor stack and
// the factories for clips and filters. All segment mutation goes
// through its atomic operations, which keep the engine mirror in
// lock-step.
type Sequence struct {
	Tracks []*Track

	engine Engine
	sync   SyncObserver

	compositors []*Compositor

	// retired holds deleted compositors by destroy id until the engine
	// confirms no live reference remains. Freeing them earlier makes
	// the engine fault when stacking is recalculated.
	retired map[uuid.UUID]*Compositor

	// onClipRemoved lets editors holding a clip open drop it when the
	// clip leaves the timeline. Optional.
	onClipRemoved func(*Clip)
}

// NewSequence creates a sequence backed by the given engine.
func NewSequence(engine Engine) *Sequence {
	return &Sequence{
		engine:  engine,
		sync:    nopSyncObserver{},
		retired: make(map[uuid.UUID]*Compositor),
	}
}

// SetSyncObserver registers the synchronization collaborator.
func (s *Sequence) SetSyncObserver(obs SyncObserver) {
	if obs == nil {
		s.sync = nopSyncObserver{}
		return
	}
	s.sync = obs
}

// Sync returns the registered synchronization collaborator.
func (s *Sequence) Sync() SyncObserver {
	return s.sync
}

// SetClipRemovedFunc registers an optional hook invoked when a clip is
// removed from the timeline.
func (s *Sequence) SetClipRemovedFunc(fn func(*Clip)) {
	s.onClipRemoved = fn
}

// AddTrack creates a new track with a matching engine track.
func (s *Sequence) AddTrack(typ TrackType) *Track {
	t := &Track{
		ID:     len(s.Tracks),
		Type:   typ,
		engine: s.engine.AddTrack(),
	}
	s.Tracks = append(s.Tracks, t)
	return t
}

// NewClip creates a clip for a media source.
func (s *Sequence) NewClip(path, name string) *Clip {
	return &Clip{
		ID:   uuid.New(),
		Name: name,
		Path: path,
	}
}

// CreateClipClone creates a fresh clip over the same source. Bounds are
// set by the operation that places the clone on a track.
func (s *Sequence) CreateClipClone(c *Clip) *Clip {
	clone := s.NewClip(c.Path, c.Name)
	return clone
}

// CreateFilter instantiates a filter from its description.
func (s *Sequence) CreateFilter(info FilterInfo) *Filter {
	f := &Filter{
		ID:    uuid.New(),
		Info:  info,
		Props: make(map[string]string, len(info.Defaults)),
	}
	for k, v := range info.Defaults {
		f.Props[k] = v
	}
	return f
}

// CreateMultipartFilter instantiates a multipart filter with its engine
// parts.
func (s *Sequence) CreateMultipartFilter(info FilterInfo) *Filter {
	f := s.CreateFilter(info)
	n := info.PartCount
	if n < 1 {
		n = 1
	}
	f.Parts = make([]*Filter, n)
	for i := range f.Parts {
		part := s.CreateFilter(FilterInfo{Name: info.Name, Defaults: info.Defaults})
		f.Parts[i] = part
	}
	return f
}

// CreateMuteFilter creates a zero-gain volume filter.
func (s *Sequence) CreateMuteFilter() *Filter {
	f := s.CreateFilter(FilterInfo{Name: muteFilterName})
	f.Set("gain", "0")
	f.Set("end", "0")
	return f
}

// AttachFilter attaches a filter (all parts for a multipart filter) to
// a clip on the engine side. The clip's own filter list is managed by
// the edit operations.
func (s *Sequence) AttachFilter(c *Clip, f *Filter) {
	if len(f.Parts) > 0 {
		for _, part := range f.Parts {
			s.engine.AttachFilter(c.ID, part.ID)
		}
		return
	}
	s.engine.AttachFilter(c.ID, f.ID)
}

// DetachFilter detaches a filter (all parts for a multipart filter)
// from a clip on the engine side.
func (s *Sequence) DetachFilter(c *Clip, f *Filter) {
	if len(f.Parts) > 0 {
		for _, part := range f.Parts {
			s.engine.DetachFilter(c.ID, part.ID)
		}
		return
	}
	s.engine.DetachFilter(c.ID, f.ID)
}

// AttachAllFilters attaches every filter on the clip's list.
func (s *Sequence) AttachAllFilters(c *Clip) {
	for _, f := range c.Filters {
		s.AttachFilter(c, f)
	}
}

// DetachAllFilters detaches every filter on the clip's list.
func (s *Sequence) DetachAllFilters(c *Clip) {
	for _, f := range c.Filters {
		s.DetachFilter(c, f)
	}
}

// CloneFilters creates copies of a clip's filters, preserving order and
// properties.
func (s *Sequence) CloneFilters(c *Clip) []*Filter {
	clones := make([]*Filter, 0, len(c.Filters))
	for _, f := range c.Filters {
		clone := s.CreateFilter(f.Info)
		for k, v := range f.Props {
			clone.Set(k, v)
		}
		if len(f.Parts) > 0 {
			clone.Parts = make([]*Filter, len(f.Parts))
			for i, part := range f.Parts {
				p := s.CreateFilter(part.Info)
				for k, v := range part.Props {
					p.Set(k, v)
				}
				clone.Parts[i] = p
			}
		}
		clones = append(clones, clone)
	}
	return clones
}

// --- compositors ---

// CreateCompositor instantiates a compositor of the given kind with a
// fresh destroy id. It is not live until AddCompositor is called.
func (s *Sequence) CreateCompositor(kind string) *Compositor {
	return &Compositor{
		DestroyID: uuid.New(),
		Kind:      kind,
		Props:     make(map[string]string),
	}
}

// AddCompositor makes a compositor live in both representations.
func (s *Sequence) AddCompositor(c *Compositor) {
	s.compositors = append(s.compositors, c)
	s.engine.AddTransition(c.DestroyID, c.ATrack, c.BTrack, c.In, c.Out)
}

// RemoveCompositor drops a compositor from both representations.
func (s *Sequence) RemoveCompositor(c *Compositor) {
	for i, sc := range s.compositors {
		if sc == c {
			s.compositors = append(s.compositors[:i], s.compositors[i+1:]...)
			break
		}
	}
	s.engine.RemoveTransition(c.DestroyID)
}

// RestackCompositors recalculates compositor stacking. The engine
// rebuilds its transition objects in the process, so every live
// compositor is replaced with a fresh object carrying the same destroy
// id. Callers must re-resolve compositors by destroy id afterwards.
func (s *Sequence) RestackCompositors() {
	rebuilt := make([]*Compositor, len(s.compositors))
	for i, old := range s.compositors {
		s.engine.RemoveTransition(old.DestroyID)
		c := &Compositor{In: old.In, Out: old.Out, ATrack: old.ATrack, BTrack: old.BTrack}
		c.CloneProperties(old)
		rebuilt[i] = c
		s.engine.AddTransition(c.DestroyID, c.ATrack, c.BTrack, c.In, c.Out)
	}
	s.compositors = rebuilt
}

// UpdateCompositor re-mirrors a live compositor's range and tracks
// after they change.
func (s *Sequence) UpdateCompositor(c *Compositor) {
	s.engine.AddTransition(c.DestroyID, c.ATrack, c.BTrack, c.In, c.Out)
}

// Compositors returns the live compositors.
func (s *Sequence) Compositors() []*Compositor {
	out := make([]*Compositor, len(s.compositors))
	copy(out, s.compositors)
	return out
}

// CompositorForDestroyID resolves the live compositor carrying the id.
func (s *Sequence) CompositorForDestroyID(id uuid.UUID) (*Compositor, error) {
	for _, c := range s.compositors {
		if c.DestroyID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoCompositor, id)
}

// Retire moves a deleted compositor into the retained pool. The engine
// revisits compositor memory when stacking is recalculated, so deleted
// compositors are kept until ReleaseRetired confirms they are safe to
// drop.
func (s *Sequence) Retire(c *Compositor) {
	s.retired[c.DestroyID] = c
}

// RetiredCompositor returns a retired compositor by destroy id.
func (s *Sequence) RetiredCompositor(id uuid.UUID) (*Compositor, bool) {
	c, ok := s.retired[id]
	return c, ok
}

// ReleaseRetired frees a retired compositor once the engine confirms no
// live reference remains.
func (s *Sequence) ReleaseRetired(id uuid.UUID) {
	delete(s.retired, id)
}

// RetiredCount returns the number of retained compositors.
func (s *Sequence) RetiredCount() int {
	return len(s.retired)
}

// CheckConsistency verifies every track against the engine mirror.
func (s *Sequence) CheckConsistency() error {
	for _, t := range s.Tracks {
		if err := t.CheckConsistency(); err != nil {
			return err
		}
	}
	return nil
}

// FindClip locates a clip on any track of the sequence.
func (s *Sequence) FindClip(c *Clip) (*Track, int, bool) {
	for _, t := range s.Tracks {
		if i := t.IndexOf(c); i >= 0 {
			return t, i, true
		}
	}
	return nil, 0, false
}
