package edit

import (
	"testing"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

func TestTwoRollTrim(t *testing.T) {
	ctx, track, _ := newTestContext()
	a := appendClip(ctx, track, "a", 0, 9)
	b := appendClip(ctx, track, "b", 5, 24)

	var doneCalls int
	var doneDelta int
	done := func(wasEdit bool, cutFrame, delta int, tr *timeline.Track, toSideEdited bool) {
		doneCalls++
		doneDelta = delta
	}

	// Move the boundary 3 frames right: a grows, b shrinks.
	act := NewTwoRollTrim(track, 1, a, b, 3, 10, false, false, done)
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if a.ClipOut != 12 || b.ClipIn != 8 {
		t.Errorf("bounds = a out %d, b in %d, want 12 and 8", a.ClipOut, b.ClipIn)
	}
	if track.Length() != 30 {
		t.Errorf("track length = %d, want 30 (unchanged)", track.Length())
	}
	if doneCalls != 1 || doneDelta != 3 {
		t.Errorf("editDone: calls %d delta %d", doneCalls, doneDelta)
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if a.ClipOut != 9 || b.ClipIn != 5 {
		t.Errorf("after undo: a out %d, b in %d, want 9 and 5", a.ClipOut, b.ClipIn)
	}

	// The callback fires on the first run only.
	if err := act.Redo(ctx); err != nil {
		t.Fatal(err)
	}
	if doneCalls != 1 {
		t.Errorf("editDone calls after redo = %d, want 1", doneCalls)
	}
}

func TestTwoRollTrimToSideBlank(t *testing.T) {
	ctx, track, _ := newTestContext()
	a := appendClip(ctx, track, "a", 0, 9)
	blank, err := ctx.Seq.InsertBlank(track, 1, 15)
	if err != nil {
		t.Fatal(err)
	}

	act := NewTwoRollTrim(track, 1, a, blank, 4, 10, true, false, nil)
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if a.ClipOut != 13 {
		t.Errorf("a out = %d, want 13", a.ClipOut)
	}
	if got := trackLengths(track); !equalInts(got, []int{14, 11}) {
		t.Fatalf("lengths = %v, want [14 11]", got)
	}
	if !track.Clip(1).IsBlank() {
		t.Error("non-edit side should still be a blank")
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if got := trackLengths(track); !equalInts(got, []int{10, 15}) {
		t.Errorf("after undo: %v, want [10 15]", got)
	}
}

func TestTwoRollTrimFromSideBlank(t *testing.T) {
	ctx, track, _ := newTestContext()
	blank, err := ctx.Seq.InsertBlank(track, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	b := appendClip(ctx, track, "b", 5, 24)

	// Boundary moves 2 frames left: the blank shrinks, b grows backwards.
	act := NewTwoRollTrim(track, 1, blank, b, -2, 10, true, true, nil)
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipIn != 3 {
		t.Errorf("b in = %d, want 3", b.ClipIn)
	}
	if got := trackLengths(track); !equalInts(got, []int{8, 22}) {
		t.Fatalf("lengths = %v, want [8 22]", got)
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipIn != 5 {
		t.Errorf("after undo: b in = %d, want 5", b.ClipIn)
	}
	if got := trackLengths(track); !equalInts(got, []int{10, 20}) {
		t.Errorf("after undo: %v, want [10 20]", got)
	}
}

func TestTrimStart(t *testing.T) {
	ctx, track, _ := newTestContext()
	appendClip(ctx, track, "a", 0, 9)
	b := appendClip(ctx, track, "b", 5, 24)

	var undoTrack *timeline.Track
	var undoIndex int
	var undoIsStart bool
	act := NewTrimStart(track, b, 1, 3, func(tr *timeline.Track, index int, isStart bool) {
		undoTrack, undoIndex, undoIsStart = tr, index, isStart
	})
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipIn != 8 || b.Length() != 17 {
		t.Errorf("b = (%d,%d), want in 8 length 17", b.ClipIn, b.ClipOut)
	}
	if undoTrack != track || undoIndex != 1 || !undoIsStart {
		t.Error("undoDone not invoked with the trimmed position")
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipIn != 5 {
		t.Errorf("after undo: b in = %d, want 5", b.ClipIn)
	}
}

func TestTrimEnd(t *testing.T) {
	ctx, track, _ := newTestContext()
	b := appendClip(ctx, track, "b", 5, 24)

	var undoIndex int
	act := NewTrimEnd(track, b, 0, -4, func(tr *timeline.Track, index int, isStart bool) {
		undoIndex = index
	})
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipOut != 20 {
		t.Errorf("b out = %d, want 20", b.ClipOut)
	}
	if undoIndex != 1 {
		t.Errorf("undoDone index = %d, want 1 (after the clip)", undoIndex)
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipOut != 24 {
		t.Errorf("after undo: b out = %d, want 24", b.ClipOut)
	}
}

func TestTrimEndOverBlanks(t *testing.T) {
	ctx, track, _ := newTestContext()
	b := appendClip(ctx, track, "b", 0, 9)
	ctx.Seq.InsertBlank(track, 1, 4)
	ctx.Seq.InsertBlank(track, 2, 6)
	appendClip(ctx, track, "c", 0, 9)

	act := NewTrimEndOverBlanks(track, b, 0)
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipOut != 19 {
		t.Errorf("b out = %d, want 19", b.ClipOut)
	}
	if got := trackLengths(track); !equalInts(got, []int{20, 10}) {
		t.Fatalf("lengths = %v, want [20 10]", got)
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if got := trackLengths(track); !equalInts(got, []int{10, 4, 6, 10}) {
		t.Errorf("after undo: %v, want [10 4 6 10]", got)
	}
	if b.ClipOut != 9 {
		t.Errorf("after undo: b out = %d, want 9", b.ClipOut)
	}
}

func TestTrimStartOverBlanks(t *testing.T) {
	ctx, track, _ := newTestContext()
	appendClip(ctx, track, "a", 0, 9)
	ctx.Seq.InsertBlank(track, 1, 4)
	ctx.Seq.InsertBlank(track, 2, 6)
	b := appendClip(ctx, track, "b", 15, 24)

	act := NewTrimStartOverBlanks(track, b, 1)
	if err := act.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipIn != 5 {
		t.Errorf("b in = %d, want 5", b.ClipIn)
	}
	if got := trackLengths(track); !equalInts(got, []int{10, 20}) {
		t.Fatalf("lengths = %v, want [10 20]", got)
	}

	if err := act.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if b.ClipIn != 15 {
		t.Errorf("after undo: b in = %d, want 15", b.ClipIn)
	}
	if got := trackLengths(track); !equalInts(got, []int{10, 4, 6, 10}) {
		t.Errorf("after undo: %v, want [10 4 6 10]", got)
	}
}
