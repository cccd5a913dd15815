package edit

import (
	"github.com/google/uuid"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// Compositors are recreated every time stacking is recalculated, so an
// action can never hold a compositor across a replay; it records the
// stable destroy id on the first run and re-resolves the live object on
// every subsequent undo or redo. Deleted compositors go into the
// sequence's retired pool instead of being dropped, because the engine
// still revisits them while its own bookkeeping settles.

// --- add compositor ---

type addCompositorData struct {
	kind         string
	originClipID uuid.UUID
	in           int
	out          int
	aTrack       int
	bTrack       int

	destroyID uuid.UUID
}

// NewAddCompositor creates a compositor over [in,out] between two
// tracks.
func NewAddCompositor(kind string, originClipID uuid.UUID, in, out, aTrack, bTrack int) *Action {
	d := &addCompositorData{kind: kind, originClipID: originClipID, in: in, out: out, aTrack: aTrack, bTrack: bTrack}
	return newAction("add compositor", d.redo, d.undo)
}

func (d *addCompositorData) redo(ctx *Context, first bool) error {
	c := ctx.Seq.CreateCompositor(d.kind)
	c.SetTracks(d.aTrack, d.bTrack)
	c.SetInAndOut(d.in, d.out)
	c.OriginClipID = d.originClipID

	if first {
		d.destroyID = c.DestroyID
	} else {
		c.DestroyID = d.destroyID
	}

	ctx.Seq.AddCompositor(c)
	ctx.Seq.RestackCompositors()
	return nil
}

func (d *addCompositorData) undo(ctx *Context) error {
	c, err := ctx.Seq.CompositorForDestroyID(d.destroyID)
	if err != nil {
		return err
	}
	ctx.Seq.RemoveCompositor(c)
	ctx.Seq.RestackCompositors()
	ctx.Seq.Retire(c)
	return nil
}

// --- delete compositor ---

type deleteCompositorData struct {
	compositor *timeline.Compositor

	destroyID uuid.UUID
}

// NewDeleteCompositor removes a compositor, retaining it for undo.
func NewDeleteCompositor(c *timeline.Compositor) *Action {
	d := &deleteCompositorData{compositor: c}
	return newAction("delete compositor", d.redo, d.undo)
}

func (d *deleteCompositorData) redo(ctx *Context, first bool) error {
	if first {
		d.destroyID = d.compositor.DestroyID
	} else {
		c, err := ctx.Seq.CompositorForDestroyID(d.destroyID)
		if err != nil {
			return err
		}
		d.compositor = c
	}
	ctx.Seq.RemoveCompositor(d.compositor)
	ctx.Seq.RestackCompositors()
	ctx.Seq.Retire(d.compositor)
	return nil
}

func (d *deleteCompositorData) undo(ctx *Context) error {
	old := d.compositor

	c := ctx.Seq.CreateCompositor(old.Kind)
	c.CloneProperties(old) // carries the destroy id forward
	c.SetInAndOut(old.In, old.Out)
	c.SetTracks(old.ATrack, old.BTrack)

	ctx.Seq.AddCompositor(c)
	ctx.Seq.RestackCompositors()

	live, err := ctx.Seq.CompositorForDestroyID(d.destroyID)
	if err != nil {
		return err
	}
	d.compositor = live
	return nil
}

// --- move compositor ---

type moveCompositorData struct {
	compositor *timeline.Compositor
	in         int
	out        int

	destroyID uuid.UUID
	origIn    int
	origOut   int
}

// NewMoveCompositor moves a compositor's frame range.
func NewMoveCompositor(c *timeline.Compositor, in, out int) *Action {
	d := &moveCompositorData{compositor: c, in: in, out: out}
	return newAction("move compositor", d.redo, d.undo)
}

func (d *moveCompositorData) redo(ctx *Context, first bool) error {
	if first {
		d.destroyID = d.compositor.DestroyID
		d.origIn = d.compositor.In
		d.origOut = d.compositor.Out
	}
	live, err := ctx.Seq.CompositorForDestroyID(d.destroyID)
	if err != nil {
		return err
	}
	live.SetInAndOut(d.in, d.out)
	ctx.Seq.UpdateCompositor(live)
	return nil
}

func (d *moveCompositorData) undo(ctx *Context) error {
	live, err := ctx.Seq.CompositorForDestroyID(d.destroyID)
	if err != nil {
		return err
	}
	live.SetInAndOut(d.origIn, d.origOut)
	ctx.Seq.UpdateCompositor(live)
	return nil
}
