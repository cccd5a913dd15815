package edit

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// addCompositor places a compositor on the sequence directly and
// returns the live object after restacking.
func addCompositor(ctx *Context, kind string, in, out, aTrack, bTrack int) *timeline.Compositor {
	c := ctx.Seq.CreateCompositor(kind)
	c.SetInAndOut(in, out)
	c.SetTracks(aTrack, bTrack)
	ctx.Seq.AddCompositor(c)
	ctx.Seq.RestackCompositors()
	live, err := ctx.Seq.CompositorForDestroyID(c.DestroyID)
	if err != nil {
		panic(err)
	}
	return live
}

func TestAddCompositorUndoRedo(t *testing.T) {
	ctx, _, _ := newTestContext()
	origin := uuid.New()

	a := NewAddCompositor("dissolve", origin, 10, 24, 1, 0)
	if err := a.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	comps := ctx.Seq.Compositors()
	if len(comps) != 1 {
		t.Fatalf("compositor count = %d, want 1", len(comps))
	}
	c := comps[0]
	if c.Kind != "dissolve" || c.In != 10 || c.Out != 24 || c.ATrack != 1 || c.BTrack != 0 {
		t.Errorf("compositor = %q [%d,%d] tracks %d/%d", c.Kind, c.In, c.Out, c.ATrack, c.BTrack)
	}
	if c.OriginClipID != origin {
		t.Error("origin clip id lost")
	}
	id := c.DestroyID

	if err := a.Undo(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(ctx.Seq.Compositors()) != 0 {
		t.Error("undo should remove the compositor")
	}
	if _, ok := ctx.Seq.RetiredCompositor(id); !ok {
		t.Error("undone compositor should go to the retired pool")
	}

	if err := a.Redo(ctx); err != nil {
		t.Fatalf("redo: %v", err)
	}
	live, err := ctx.Seq.CompositorForDestroyID(id)
	if err != nil {
		t.Fatalf("redo should reuse the recorded destroy id: %v", err)
	}
	if live.In != 10 || live.Out != 24 || live.Kind != "dissolve" {
		t.Errorf("redone compositor = %q [%d,%d]", live.Kind, live.In, live.Out)
	}
}

func TestDeleteCompositorUndoRecreates(t *testing.T) {
	ctx, _, _ := newTestContext()
	live := addCompositor(ctx, "wipe", 5, 40, 2, 1)
	id := live.DestroyID

	a := NewDeleteCompositor(live)
	if err := a.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(ctx.Seq.Compositors()) != 0 {
		t.Fatal("delete should remove the compositor")
	}
	if _, ok := ctx.Seq.RetiredCompositor(id); !ok {
		t.Error("deleted compositor should be retired")
	}

	if err := a.Undo(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	restored, err := ctx.Seq.CompositorForDestroyID(id)
	if err != nil {
		t.Fatalf("undo should recreate the compositor under its destroy id: %v", err)
	}
	if restored.Kind != "wipe" || restored.In != 5 || restored.Out != 40 {
		t.Errorf("restored compositor = %q [%d,%d]", restored.Kind, restored.In, restored.Out)
	}
	if restored.ATrack != 2 || restored.BTrack != 1 {
		t.Errorf("restored tracks = %d/%d, want 2/1", restored.ATrack, restored.BTrack)
	}

	// Redo resolves the live object by id even though undo built a
	// fresh one.
	if err := a.Redo(ctx); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if len(ctx.Seq.Compositors()) != 0 {
		t.Error("redo should remove the compositor again")
	}
}

func TestMoveCompositor(t *testing.T) {
	ctx, _, _ := newTestContext()
	live := addCompositor(ctx, "dissolve", 10, 20, 1, 0)
	id := live.DestroyID

	a := NewMoveCompositor(live, 30, 45)
	if err := a.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	moved, err := ctx.Seq.CompositorForDestroyID(id)
	if err != nil {
		t.Fatal(err)
	}
	if moved.In != 30 || moved.Out != 45 {
		t.Errorf("range after move = [%d,%d], want [30,45]", moved.In, moved.Out)
	}

	if err := a.Undo(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	back, _ := ctx.Seq.CompositorForDestroyID(id)
	if back.In != 10 || back.Out != 20 {
		t.Errorf("range after undo = [%d,%d], want [10,20]", back.In, back.Out)
	}

	if err := a.Redo(ctx); err != nil {
		t.Fatalf("redo: %v", err)
	}
	again, _ := ctx.Seq.CompositorForDestroyID(id)
	if again.In != 30 || again.Out != 45 {
		t.Errorf("range after redo = [%d,%d], want [30,45]", again.In, again.Out)
	}
}
