package edit

import (
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// overwriteBounds captures what the boundary cuts of an overwrite did,
// so undo knows whether to reconstruct split halves or simply restore
// saved segments. The -1 sentinel means the boundary was already on a
// cut and nothing needs reconstructing.
type overwriteBounds struct {
	// inClipOut is the out frame the in-boundary segment had before it
	// was cut, or -1 if no cut was made.
	inClipOut int

	// outClipIn is the in frame the out-boundary segment had before it
	// was cut, or -1 if no cut was made.
	outClipIn int

	// outClipLength is the pre-cut length of the out-boundary segment.
	// A cut blank cannot be reconstructed from outClipIn (blank in
	// frames are always 0), so the length is kept as well.
	outClipLength int
}

// cutOverwriteRange prepares a destination range [overIn, overOut) for
// an overwrite: pads the track if the range starts past its end, then
// cuts the in and out boundaries unless they already fall on cuts.
func cutOverwriteRange(ctx *Context, track *timeline.Track, overIn, overOut int) (overwriteBounds, error) {
	b := overwriteBounds{inClipOut: -1, outClipIn: -1}

	if overIn >= track.Length() {
		gap := overOut - track.Length()
		if _, err := ctx.Seq.InsertBlank(track, track.Len(), gap); err != nil {
			return b, err
		}
	}

	_, out, didCut, err := ctx.Seq.CutTrackAtFrame(track, overIn)
	if err != nil {
		return b, err
	}
	if didCut {
		b.inClipOut = out
	}

	if track.Length() > overOut {
		in, out, didCut, err := ctx.Seq.CutTrackAtFrame(track, overOut)
		if err != nil {
			return b, err
		}
		if didCut {
			b.outClipIn = in
			b.outClipLength = out - in + 1
		}
	}
	return b, nil
}

// spliceOutRange removes every segment fully inside [overIn, overOut)
// after the boundary cuts, returning them with the index they were
// removed at.
func spliceOutRange(ctx *Context, track *timeline.Track, overIn, overOut int) ([]*timeline.Clip, int, error) {
	inIndex := track.ClipIndexAt(overIn)
	outIndex := track.ClipIndexAt(overOut)

	var removed []*timeline.Clip
	for i := inIndex; i < outIndex; i++ {
		c, err := ctx.Seq.RemoveClip(track, inIndex)
		if err != nil {
			return removed, inIndex, err
		}
		removed = append(removed, c)
	}
	return removed, inIndex, nil
}

// restoreOverwriteRange reverses cutOverwriteRange + spliceOutRange:
// it reconstructs cut boundary segments and puts the spliced-out
// segments back, starting at movedIndex. Cut blanks are reconstructed
// as fresh blanks; cut clips are restored via their saved bounds.
//
// The out-boundary reconstruction is skipped when nothing remains at
// movedIndex: that is the end-of-track case, where the cut's second
// half was consumed as a trailing blank during the forward run.
func restoreOverwriteRange(ctx *Context, track *timeline.Track, movedIndex int, b overwriteBounds, removed []*timeline.Clip) error {
	if b.inClipOut != -1 {
		inClip, err := ctx.Seq.RemoveClip(track, movedIndex-1)
		if err != nil {
			return err
		}
		if !inClip.IsBlank() {
			if err := ctx.Seq.InsertClip(track, inClip, movedIndex-1, inClip.ClipIn, b.inClipOut); err != nil {
				return err
			}
		} else {
			// Blanks cannot be resized, so put in a new blank.
			if _, err := ctx.Seq.InsertBlank(track, movedIndex-1, b.inClipOut-inClip.ClipIn+1); err != nil {
				return err
			}
		}
		removed = removed[1:] // drop the in cut's second half
	}

	if b.outClipIn != -1 && movedIndex < track.Len() {
		outClip, err := ctx.Seq.RemoveClip(track, movedIndex)
		if err != nil {
			return err
		}
		if len(removed) > 0 {
			if !outClip.IsBlank() {
				if err := ctx.Seq.InsertClip(track, outClip, movedIndex, b.outClipIn, outClip.ClipOut); err != nil {
					return err
				}
			} else {
				if _, err := ctx.Seq.InsertBlank(track, movedIndex, b.outClipLength); err != nil {
					return err
				}
			}
			removed = removed[:len(removed)-1] // drop the out cut's first half
		}
		// With nothing removed the overwrite happened inside a single
		// segment: the in fix above already restored it whole and the
		// out cut's second half is simply discarded.
	}

	for i, c := range removed {
		if err := ctx.Seq.InsertClip(track, c, movedIndex+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	return nil
}

// --- insert move ---

type insertMoveData struct {
	track    *timeline.Track
	insert   int
	rangeIn  int
	rangeOut int
	moveDone func([]*timeline.Clip)

	clips      []*timeline.Clip
	realInsert int
}

// NewInsertMove splices segments [rangeIn,rangeOut] out of a track and
// splices them back in at insertIndex.
func NewInsertMove(track *timeline.Track, insertIndex, rangeIn, rangeOut int, moveDone func([]*timeline.Clip)) *Action {
	d := &insertMoveData{track: track, insert: insertIndex, rangeIn: rangeIn, rangeOut: rangeOut, moveDone: moveDone}
	return newAction("insert move", d.redo, d.undo)
}

func (d *insertMoveData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.rangeIn, d.rangeOut); err != nil {
		return err
	}
	d.clips = nil
	d.realInsert = d.insert
	clipsLength := d.rangeOut - d.rangeIn + 1

	// Inserting after the range lands differently once the range is
	// removed.
	if d.realInsert > d.rangeOut {
		d.realInsert -= clipsLength
	}

	for i := 0; i < clipsLength; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.rangeIn)
		if err != nil {
			return err
		}
		d.clips = append(d.clips, c)
	}
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.track, c, d.realInsert+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if d.moveDone != nil {
		d.moveDone(d.clips)
	}
	return nil
}

func (d *insertMoveData) undo(ctx *Context) error {
	for range d.clips {
		if _, err := ctx.Seq.RemoveClip(d.track, d.realInsert); err != nil {
			return err
		}
	}
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.track, c, d.rangeIn+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if d.moveDone != nil {
		d.moveDone(d.clips)
	}
	return nil
}

// --- multitrack insert move ---

type multitrackInsertMoveData struct {
	track    *timeline.Track
	toTrack  *timeline.Track
	insert   int
	rangeIn  int
	rangeOut int
	moveDone func([]*timeline.Clip)

	clips []*timeline.Clip
}

// NewMultitrackInsertMove splices segments out of one track and into
// another.
func NewMultitrackInsertMove(track, toTrack *timeline.Track, insertIndex, rangeIn, rangeOut int, moveDone func([]*timeline.Clip)) *Action {
	d := &multitrackInsertMoveData{track: track, toTrack: toTrack, insert: insertIndex, rangeIn: rangeIn, rangeOut: rangeOut, moveDone: moveDone}
	return newAction("insert move", d.redo, d.undo)
}

func (d *multitrackInsertMoveData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.rangeIn, d.rangeOut); err != nil {
		return err
	}
	d.clips = nil
	clipsLength := d.rangeOut - d.rangeIn + 1
	for i := 0; i < clipsLength; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.rangeIn)
		if err != nil {
			return err
		}
		d.clips = append(d.clips, c)
	}
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.toTrack, c, d.insert+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}

	// Waveforms rendered for the old track no longer fit.
	if ctx.Waveforms != nil {
		ctx.Waveforms.Evict(d.clips, d.toTrack)
	}
	if d.moveDone != nil {
		d.moveDone(d.clips)
	}
	return nil
}

func (d *multitrackInsertMoveData) undo(ctx *Context) error {
	for range d.clips {
		if _, err := ctx.Seq.RemoveClip(d.toTrack, d.insert); err != nil {
			return err
		}
	}
	for i, c := range d.clips {
		if err := ctx.Seq.InsertClip(d.track, c, d.rangeIn+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if d.moveDone != nil {
		d.moveDone(d.clips)
	}
	return nil
}

// --- overwrite move ---

type overwriteMoveData struct {
	track    *timeline.Track
	overIn   int
	overOut  int
	rangeIn  int
	rangeOut int
	moveDone func([]*timeline.Clip)

	moved   []*timeline.Clip
	removed []*timeline.Clip
	bounds  overwriteBounds
}

// NewOverwriteMove lifts segments [rangeIn,rangeOut] from a track and
// overwrites the destination range [overIn,overOut) with them.
func NewOverwriteMove(track *timeline.Track, overIn, overOut, rangeIn, rangeOut int, moveDone func([]*timeline.Clip)) *Action {
	d := &overwriteMoveData{track: track, overIn: overIn, overOut: overOut, rangeIn: rangeIn, rangeOut: rangeOut, moveDone: moveDone}
	return newAction("overwrite move", d.redo, d.undo)
}

func (d *overwriteMoveData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.rangeIn, d.rangeOut); err != nil {
		return err
	}

	// Lift the moved segments, leaving a blank in their place.
	d.moved = nil
	for i := d.rangeIn; i <= d.rangeOut; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.rangeIn)
		if err != nil {
			return err
		}
		d.moved = append(d.moved, c)
	}
	removedLength := d.overOut - d.overIn
	if _, err := ctx.Seq.InsertBlank(d.track, d.rangeIn, removedLength); err != nil {
		return err
	}

	b, err := cutOverwriteRange(ctx, d.track, d.overIn, d.overOut)
	if err != nil {
		return err
	}
	d.bounds = b

	removed, inIndex, err := spliceOutRange(ctx, d.track, d.overIn, d.overOut)
	if err != nil {
		return err
	}
	d.removed = removed

	for i, c := range d.moved {
		if err := ctx.Seq.InsertClip(d.track, c, inIndex+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if _, err := ctx.Seq.RemoveTrailingBlanks(d.track); err != nil {
		return err
	}
	if d.moveDone != nil {
		d.moveDone(d.moved)
	}
	return nil
}

func (d *overwriteMoveData) undo(ctx *Context) error {
	movedIndex := d.track.ClipIndexAt(d.overIn)
	for range d.moved {
		if _, err := ctx.Seq.RemoveClip(d.track, movedIndex); err != nil {
			return err
		}
	}

	if err := restoreOverwriteRange(ctx, d.track, movedIndex, d.bounds, d.removed); err != nil {
		return err
	}

	// Remove the blank left by the lift. When the moved segments were
	// last on the track the blank was consumed as a trailing blank
	// during the forward run, so only a blank still sitting at the
	// lift index is removed.
	if d.rangeIn < d.track.Len() && d.track.Clip(d.rangeIn).IsBlank() {
		if _, err := ctx.Seq.RemoveClip(d.track, d.rangeIn); err != nil {
			return err
		}
	}

	for i, c := range d.moved {
		if err := ctx.Seq.InsertClip(d.track, c, d.rangeIn+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if _, err := ctx.Seq.RemoveTrailingBlanks(d.track); err != nil {
		return err
	}
	if d.moveDone != nil {
		d.moveDone(d.moved)
	}
	return nil
}

// --- multitrack overwrite move ---

type multitrackOverwriteMoveData struct {
	track    *timeline.Track
	toTrack  *timeline.Track
	overIn   int
	overOut  int
	rangeIn  int
	rangeOut int
	moveDone func([]*timeline.Clip)

	moved   []*timeline.Clip
	removed []*timeline.Clip
	bounds  overwriteBounds
}

// NewMultitrackOverwriteMove lifts segments from one track and
// overwrites a destination range on another.
func NewMultitrackOverwriteMove(track, toTrack *timeline.Track, overIn, overOut, rangeIn, rangeOut int, moveDone func([]*timeline.Clip)) *Action {
	d := &multitrackOverwriteMoveData{track: track, toTrack: toTrack, overIn: overIn, overOut: overOut, rangeIn: rangeIn, rangeOut: rangeOut, moveDone: moveDone}
	return newAction("overwrite move", d.redo, d.undo)
}

func (d *multitrackOverwriteMoveData) redo(ctx *Context, first bool) error {
	if err := validateRange(d.track, d.rangeIn, d.rangeOut); err != nil {
		return err
	}

	d.moved = nil
	for i := d.rangeIn; i <= d.rangeOut; i++ {
		c, err := ctx.Seq.RemoveClip(d.track, d.rangeIn)
		if err != nil {
			return err
		}
		d.moved = append(d.moved, c)
	}
	removedLength := d.overOut - d.overIn
	if _, err := ctx.Seq.InsertBlank(d.track, d.rangeIn, removedLength); err != nil {
		return err
	}

	b, err := cutOverwriteRange(ctx, d.toTrack, d.overIn, d.overOut)
	if err != nil {
		return err
	}
	d.bounds = b

	removed, inIndex, err := spliceOutRange(ctx, d.toTrack, d.overIn, d.overOut)
	if err != nil {
		return err
	}
	d.removed = removed

	for i, c := range d.moved {
		if err := ctx.Seq.InsertClip(d.toTrack, c, inIndex+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if _, err := ctx.Seq.RemoveTrailingBlanks(d.track); err != nil {
		return err
	}
	if _, err := ctx.Seq.RemoveTrailingBlanks(d.toTrack); err != nil {
		return err
	}

	if ctx.Waveforms != nil {
		ctx.Waveforms.Evict(d.moved, d.toTrack)
	}
	if d.moveDone != nil {
		d.moveDone(d.moved)
	}
	return nil
}

func (d *multitrackOverwriteMoveData) undo(ctx *Context) error {
	movedIndex := d.toTrack.ClipIndexAt(d.overIn)
	for range d.moved {
		if _, err := ctx.Seq.RemoveClip(d.toTrack, movedIndex); err != nil {
			return err
		}
	}

	if err := restoreOverwriteRange(ctx, d.toTrack, movedIndex, d.bounds, d.removed); err != nil {
		return err
	}

	if d.rangeIn < d.track.Len() && d.track.Clip(d.rangeIn).IsBlank() {
		if _, err := ctx.Seq.RemoveClip(d.track, d.rangeIn); err != nil {
			return err
		}
	}
	for i, c := range d.moved {
		if err := ctx.Seq.InsertClip(d.track, c, d.rangeIn+i, c.ClipIn, c.ClipOut); err != nil {
			return err
		}
	}
	if _, err := ctx.Seq.RemoveTrailingBlanks(d.track); err != nil {
		return err
	}
	if _, err := ctx.Seq.RemoveTrailingBlanks(d.toTrack); err != nil {
		return err
	}
	if d.moveDone != nil {
		d.moveDone(d.moved)
	}
	return nil
}
