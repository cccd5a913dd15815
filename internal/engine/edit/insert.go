package edit

import (
	"fmt"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// validateRange checks a [from,to] segment index range before any
// mutation begins, so a bad request never reaches the timeline.
func validateRange(t *timeline.Track, from, to int) error {
	if from < 0 || to >= t.Len() || from > to {
		return fmt.Errorf("segment range [%d,%d] out of bounds for track %d with %d segments", from, to, t.ID, t.Len())
	}
	return nil
}

// --- append ---

type appendData struct {
	track *timeline.Track
	clip  *timeline.Clip
	in    int
	out   int
}

// NewAppend appends a clip to the end of a track.
func NewAppend(track *timeline.Track, clip *timeline.Clip, in, out int) *Action {
	d := &appendData{track: track, clip: clip, in: in, out: out}
	return newAction("append clip", d.redo, d.undo)
}

func (d *appendData) redo(ctx *Context, first bool) error {
	return ctx.Seq.AppendClip(d.track, d.clip, d.in, d.out)
}

func (d *appendData) undo(ctx *Context) error {
	c, err := ctx.Seq.RemoveClip(d.track, d.track.Len()-1)
	if err != nil {
		return err
	}
	d.clip = c
	return nil
}

// --- insert ---

type insertData struct {
	track *timeline.Track
	clip  *timeline.Clip
	index int
	in    int
	out   int
}

// NewInsert inserts a clip at index on a track.
func NewInsert(track *timeline.Track, clip *timeline.Clip, index, in, out int) *Action {
	d := &insertData{track: track, clip: clip, index: index, in: in, out: out}
	return newAction("insert clip", d.redo, d.undo)
}

func (d *insertData) redo(ctx *Context, first bool) error {
	return ctx.Seq.InsertClip(d.track, d.clip, d.index, d.in, d.out)
}

func (d *insertData) undo(ctx *Context) error {
	_, err := ctx.Seq.RemoveClip(d.track, d.index)
	return err
}

// --- remove multiple ---

type removeMultipleData struct {
	track *timeline.Track
	from  int
	to    int

	clips []*timeline.Clip
}

// NewRemoveMultiple removes segments [from,to] from a track.
func NewRemoveMultiple(track *timeline.Track, from, to int) *Action {
	d := &removeMultipleData{track: track, from: from, to: to}
	return newAction("remove clips", d.redo, d.undo)
}

func (d *removeMultipleData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.from, d.to); err != nil {
		return err
	}
	d.clips = nil
	for i := d.from; i <= d.to; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.from)
		if err != nil {
			return err
		}
		d.clips = append(d.clips, c)
	}
	return nil
}

func (d *removeMultipleData) undo(ctx *Context) error {
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.track, c, d.from+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	return nil
}

// --- lift multiple ---

type liftMultipleData struct {
	track *timeline.Track
	from  int
	to    int

	clips []*timeline.Clip
}

// NewLiftMultiple removes segments [from,to] and replaces them with one
// blank of their summed length.
func NewLiftMultiple(track *timeline.Track, from, to int) *Action {
	d := &liftMultipleData{track: track, from: from, to: to}
	return newAction("lift clips", d.redo, d.undo)
}

func (d *liftMultipleData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.from, d.to); err != nil {
		return err
	}
	d.clips = nil
	removedLength := 0
	for i := d.from; i <= d.to; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.from)
		if err != nil {
			return err
		}
		d.clips = append(d.clips, c)
		removedLength += c.Length()
	}
	_, err := ctx.Seq.InsertBlank(d.track, d.from, removedLength)
	return err
}

func (d *liftMultipleData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.from); err != nil {
		return err
	}
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.track, c, d.from+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	return nil
}

// --- cut ---

type cutData struct {
	track    *timeline.Track
	clip     *timeline.Clip
	index    int
	cutFrame int

	// clone is created on the first run only; redo reuses it so undo
	// and redo cycle over the same pair of clips.
	clone *timeline.Clip
}

// NewCut splits the clip at index in two at cutFrame (a source frame of
// the clip).
func NewCut(track *timeline.Track, clip *timeline.Clip, index, cutFrame int) *Action {
	d := &cutData{track: track, clip: clip, index: index, cutFrame: cutFrame}
	return newAction("cut clip", d.redo, d.undo)
}

func (d *cutData) redo(ctx *Context, first bool) error {
	if first {
		d.clone = ctx.Seq.CreateClipClone(d.clip)
	}
	return ctx.Seq.Cut(d.track, d.index, d.cutFrame, d.clip, d.clone)
}

func (d *cutData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn, d.clone.ClipOut)
}

// --- three point overwrite ---

type threePointOverwriteData struct {
	track    *timeline.Track
	clip     *timeline.Clip
	clipIn   int
	clipOut  int
	inIndex  int
	outIndex int

	clips []*timeline.Clip
}

// NewThreePointOverwrite replaces segments [inIndex,outIndex] with one
// new clip at inIndex.
func NewThreePointOverwrite(track *timeline.Track, clip *timeline.Clip, clipIn, clipOut, inIndex, outIndex int) *Action {
	d := &threePointOverwriteData{
		track:    track,
		clip:     clip,
		clipIn:   clipIn,
		clipOut:  clipOut,
		inIndex:  inIndex,
		outIndex: outIndex,
	}
	return newAction("overwrite", d.redo, d.undo)
}

func (d *threePointOverwriteData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.inIndex, d.outIndex); err != nil {
		return err
	}
	d.clips = nil
	for i := d.inIndex; i <= d.outIndex; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.inIndex)
		if err != nil {
			return err
		}
		d.clips = append(d.clips, c)
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.inIndex, d.clipIn, d.clipOut)
}

func (d *threePointOverwriteData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.inIndex); err != nil {
		return err
	}
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.track, c, d.inIndex+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	return nil
}

// --- sync overwrite ---

type syncOverwriteData struct {
	track   *timeline.Track
	clip    *timeline.Clip
	clipIn  int
	clipOut int
	frame   int

	overOut int
	inIndex int
	bounds  overwriteBounds
	removed []*timeline.Clip
}

// NewSyncOverwrite overwrites a track at frame with a clip, cutting the
// boundaries as needed.
func NewSyncOverwrite(track *timeline.Track, clip *timeline.Clip, clipIn, clipOut, frame int) *Action {
	d := &syncOverwriteData{track: track, clip: clip, clipIn: clipIn, clipOut: clipOut, frame: frame}
	return newAction("sync overwrite", d.redo, d.undo)
}

func (d *syncOverwriteData) redo(ctx *Context, first bool) error {
	d.overOut = d.frame + d.clipOut - d.clipIn + 1
	b, err := cutOverwriteRange(ctx, d.track, d.frame, d.overOut)
	if err != nil {
		return err
	}
	d.bounds = b

	removed, inIndex, err := spliceOutRange(ctx, d.track, d.frame, d.overOut)
	if err != nil {
		return err
	}
	d.removed = removed
	d.inIndex = inIndex

	return ctx.Seq.InsertClip(d.track, d.clip, d.inIndex, d.clipIn, d.clipOut)
}

func (d *syncOverwriteData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.inIndex); err != nil {
		return err
	}
	if err := restoreOverwriteRange(ctx, d.track, d.inIndex, d.bounds, d.removed); err != nil {
		return err
	}
	return nil
}
