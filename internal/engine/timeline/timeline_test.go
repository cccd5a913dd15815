package timeline

import (
	"github.com/google/uuid"
)

// testEngine is a minimal engine for exercising the atomic operations.
// Its track keeps its own segment bounds so tests can sabotage the
// mirror and watch the desync checks fire.
type testEngine struct {
	tracks      []*testEngineTrack
	attachments map[uuid.UUID][]uuid.UUID
	transitions map[uuid.UUID]bool
}

func newTestEngine() *testEngine {
	return &testEngine{
		attachments: make(map[uuid.UUID][]uuid.UUID),
		transitions: make(map[uuid.UUID]bool),
	}
}

func (e *testEngine) AddTrack() EngineTrack {
	t := &testEngineTrack{}
	e.tracks = append(e.tracks, t)
	return t
}

func (e *testEngine) AttachFilter(clipID, filterID uuid.UUID) {
	e.attachments[clipID] = append(e.attachments[clipID], filterID)
}

func (e *testEngine) DetachFilter(clipID, filterID uuid.UUID) {
	list := e.attachments[clipID]
	for i, id := range list {
		if id == filterID {
			e.attachments[clipID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (e *testEngine) AttachedFilters(clipID uuid.UUID) []uuid.UUID {
	return e.attachments[clipID]
}

func (e *testEngine) AddTransition(destroyID uuid.UUID, aTrack, bTrack, in, out int) {
	e.transitions[destroyID] = true
}

func (e *testEngine) RemoveTransition(destroyID uuid.UUID) {
	delete(e.transitions, destroyID)
}

func (e *testEngine) TransitionCount() int {
	return len(e.transitions)
}

type testSegment struct {
	in, out int
}

type testEngineTrack struct {
	segments []testSegment
}

func (t *testEngineTrack) Append(c *Clip, in, out int) {
	t.segments = append(t.segments, testSegment{in, out})
}

func (t *testEngineTrack) Insert(c *Clip, index, in, out int) {
	t.insert(index, testSegment{in, out})
}

func (t *testEngineTrack) InsertBlank(index, outFrame int) {
	t.insert(index, testSegment{0, outFrame})
}

func (t *testEngineTrack) insert(index int, s testSegment) {
	t.segments = append(t.segments, testSegment{})
	copy(t.segments[index+1:], t.segments[index:])
	t.segments[index] = s
}

func (t *testEngineTrack) Remove(index int) {
	t.segments = append(t.segments[:index], t.segments[index+1:]...)
}

func (t *testEngineTrack) SetInAndOut(index, in, out int) {
	t.segments[index] = testSegment{in, out}
}

func (t *testEngineTrack) ClipStart(index int) int {
	start := 0
	for i := 0; i < index; i++ {
		start += t.segments[i].out - t.segments[i].in + 1
	}
	return start
}

func (t *testEngineTrack) ClipIndexAt(frame int) int {
	start := 0
	for i, s := range t.segments {
		start += s.out - s.in + 1
		if frame < start {
			return i
		}
	}
	return len(t.segments)
}

func (t *testEngineTrack) Length() int {
	total := 0
	for _, s := range t.segments {
		total += s.out - s.in + 1
	}
	return total
}

func (t *testEngineTrack) Count() int {
	return len(t.segments)
}

// newTestSequence returns a sequence with one video track.
func newTestSequence() (*Sequence, *Track, *testEngine) {
	e := newTestEngine()
	seq := NewSequence(e)
	track := seq.AddTrack(TrackVideo)
	return seq, track, e
}

// appendClip adds a named clip with the given source bounds.
func appendClip(seq *Sequence, track *Track, name string, in, out int) *Clip {
	c := seq.NewClip(name+".mov", name)
	if err := seq.AppendClip(track, c, in, out); err != nil {
		panic(err)
	}
	return c
}

// trackLengths returns the segment lengths in order.
func trackLengths(track *Track) []int {
	out := make([]int, track.Len())
	for i := range out {
		out[i] = track.Clip(i).Length()
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
