package mlt

import (
	"testing"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

func newTrackWithClips(lengths ...int) *Track {
	t := &Track{}
	for _, l := range lengths {
		t.Append(&timeline.Clip{}, 0, l-1)
	}
	return t
}

func TestTrackAppendAndLength(t *testing.T) {
	tr := newTrackWithClips(10, 20, 15)
	if tr.Count() != 3 {
		t.Errorf("Count() = %d, want 3", tr.Count())
	}
	if tr.Length() != 45 {
		t.Errorf("Length() = %d, want 45", tr.Length())
	}
}

func TestTrackClipStart(t *testing.T) {
	tr := newTrackWithClips(10, 20, 15)
	starts := []int{0, 10, 30}
	for i, want := range starts {
		if got := tr.ClipStart(i); got != want {
			t.Errorf("ClipStart(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestTrackClipIndexAt(t *testing.T) {
	tr := newTrackWithClips(10, 20, 15)
	tests := []struct {
		frame int
		want  int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{29, 1},
		{30, 2},
		{44, 2},
		{45, 3}, // at track end: Count()
		{100, 3},
	}
	for _, tt := range tests {
		if got := tr.ClipIndexAt(tt.frame); got != tt.want {
			t.Errorf("ClipIndexAt(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}

func TestTrackInsertAndRemove(t *testing.T) {
	tr := newTrackWithClips(10, 20)
	tr.Insert(&timeline.Clip{}, 1, 0, 4)
	if tr.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", tr.Count())
	}
	if tr.ClipStart(2) != 15 {
		t.Errorf("ClipStart(2) = %d, want 15", tr.ClipStart(2))
	}
	tr.Remove(1)
	if tr.Count() != 2 || tr.Length() != 30 {
		t.Errorf("after remove: count %d length %d, want 2 and 30", tr.Count(), tr.Length())
	}
}

func TestTrackInsertBlankTakesOutFrame(t *testing.T) {
	tr := newTrackWithClips(10)
	tr.InsertBlank(1, 11) // a 12 frame blank
	if tr.Length() != 22 {
		t.Errorf("Length() = %d, want 22", tr.Length())
	}
}

func TestTrackSetInAndOut(t *testing.T) {
	tr := newTrackWithClips(10)
	tr.SetInAndOut(0, 5, 19)
	if tr.Length() != 15 {
		t.Errorf("Length() = %d, want 15", tr.Length())
	}
}

func TestEngineFilterAttachments(t *testing.T) {
	e := NewEngine()
	seq := timeline.NewSequence(e)
	c := seq.NewClip("a.mov", "a")
	f := seq.CreateFilter(timeline.FilterInfo{Name: "blur"})
	g := seq.CreateFilter(timeline.FilterInfo{Name: "glow"})

	e.AttachFilter(c.ID, f.ID)
	e.AttachFilter(c.ID, g.ID)
	attached := e.AttachedFilters(c.ID)
	if len(attached) != 2 || attached[0] != f.ID || attached[1] != g.ID {
		t.Fatalf("AttachedFilters() = %v", attached)
	}

	e.DetachFilter(c.ID, f.ID)
	attached = e.AttachedFilters(c.ID)
	if len(attached) != 1 || attached[0] != g.ID {
		t.Errorf("after detach: %v", attached)
	}
}

func TestEngineTransitions(t *testing.T) {
	e := NewEngine()
	seq := timeline.NewSequence(e)
	c := seq.CreateCompositor("dissolve")

	e.AddTransition(c.DestroyID, 1, 0, 10, 20)
	if e.TransitionCount() != 1 {
		t.Fatalf("TransitionCount() = %d, want 1", e.TransitionCount())
	}
	e.RemoveTransition(c.DestroyID)
	if e.TransitionCount() != 0 {
		t.Errorf("TransitionCount() = %d, want 0", e.TransitionCount())
	}
}
