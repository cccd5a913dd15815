package edit

import (
	"github.com/ptrg/flowblade/internal/engine/mlt"
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// recorder counts the collaborator callbacks an action run triggers.
type recorder struct {
	stops    int
	clears   int
	changes  int
	dropped  []*timeline.Clip
	evicted  []*timeline.Clip
	evictedT *timeline.Track
}

func (r *recorder) StopPlayback() { r.stops++ }
func (r *recorder) Clear()        { r.clears++ }

func (r *recorder) TimelineChanged() { r.changes++ }
func (r *recorder) ClipRemovedFromEditors(c *timeline.Clip) {
	r.dropped = append(r.dropped, c)
}

func (r *recorder) Evict(clips []*timeline.Clip, t *timeline.Track) {
	r.evicted = append(r.evicted, clips...)
	r.evictedT = t
}

// newTestContext builds a context over a fresh sequence with one video
// track, wiring a recorder as every optional collaborator.
func newTestContext() (*Context, *timeline.Track, *recorder) {
	seq := timeline.NewSequence(mlt.NewEngine())
	track := seq.AddTrack(timeline.TrackVideo)
	rec := &recorder{}
	ctx := &Context{
		Seq:       seq,
		Player:    rec,
		Selection: rec,
		GUI:       rec,
		Waveforms: rec,
	}
	return ctx, track, rec
}

func appendClip(ctx *Context, track *timeline.Track, name string, in, out int) *timeline.Clip {
	c := ctx.Seq.NewClip(name+".mov", name)
	if err := ctx.Seq.AppendClip(track, c, in, out); err != nil {
		panic(err)
	}
	return c
}

func trackLengths(track *timeline.Track) []int {
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

// trackState captures names/blanks and bounds for comparing before and
// after an undo.
type segState struct {
	name    string
	blank   bool
	in, out int
}

func captureTrack(track *timeline.Track) []segState {
	out := make([]segState, track.Len())
	for i := range out {
		c := track.Clip(i)
		out[i] = segState{name: c.Name, blank: c.IsBlank(), in: c.ClipIn, out: c.ClipOut}
	}
	return out
}

func equalStates(a, b []segState) bool {
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
