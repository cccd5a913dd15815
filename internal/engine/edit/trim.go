package edit

import (
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// TrimEditDone is invoked once, on an action's first run, with the
// resulting boundary position and which side was edited so trim tooling
// can re-arm itself.
type TrimEditDone func(wasEdit bool, cutFrame, delta int, track *timeline.Track, toSideEdited bool)

// UndoDone is invoked once, on a trim action's first run, with the
// affected track and index.
type UndoDone func(track *timeline.Track, index int, isStart bool)

// --- two-roll trim ---

type twoRollTrimData struct {
	track    *timeline.Track
	index    int
	fromClip *timeline.Clip
	toClip   *timeline.Clip
	delta    int
	cutFrame int

	// nonEditSideBlank marks that the segment opposite the edited side
	// is a blank; blanks cannot hold a resized bound, so a fresh blank
	// is substituted instead.
	nonEditSideBlank bool
	toSideEdited     bool
	editDone         TrimEditDone

	fromLength int
	toLength   int
}

// NewTwoRollTrim shifts the shared boundary between the segments at
// index-1 and index by delta frames, shrinking one side and growing the
// other.
func NewTwoRollTrim(track *timeline.Track, index int, fromClip, toClip *timeline.Clip, delta, cutFrame int, nonEditSideBlank, toSideEdited bool, editDone TrimEditDone) *Action {
	d := &twoRollTrimData{
		track:            track,
		index:            index,
		fromClip:         fromClip,
		toClip:           toClip,
		delta:            delta,
		cutFrame:         cutFrame,
		nonEditSideBlank: nonEditSideBlank,
		toSideEdited:     toSideEdited,
		editDone:         editDone,
	}
	return newAction("trim", d.redo, d.undo)
}

func (d *twoRollTrimData) redo(ctx *Context, first bool) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	if _, err := ctx.Seq.RemoveClip(d.track, d.index-1); err != nil {
		return err
	}
	switch {
	case !d.nonEditSideBlank:
		if err := ctx.Seq.InsertClip(d.track, d.fromClip, d.index-1, d.fromClip.ClipIn, d.fromClip.ClipOut+d.delta); err != nil {
			return err
		}
		if err := ctx.Seq.InsertClip(d.track, d.toClip, d.index, d.toClip.ClipIn+d.delta, d.toClip.ClipOut); err != nil {
			return err
		}
	case d.toClip.IsBlank():
		if err := ctx.Seq.InsertClip(d.track, d.fromClip, d.index-1, d.fromClip.ClipIn, d.fromClip.ClipOut+d.delta); err != nil {
			return err
		}
		d.toLength = d.toClip.Length()
		if _, err := ctx.Seq.InsertBlank(d.track, d.index, d.toLength-d.delta); err != nil {
			return err
		}
	default: // from side is a blank
		d.fromLength = d.fromClip.Length()
		if _, err := ctx.Seq.InsertBlank(d.track, d.index-1, d.fromLength+d.delta); err != nil {
			return err
		}
		if err := ctx.Seq.InsertClip(d.track, d.toClip, d.index, d.toClip.ClipIn+d.delta, d.toClip.ClipOut); err != nil {
			return err
		}
	}

	if first && d.editDone != nil {
		d.editDone(true, d.cutFrame, d.delta, d.track, d.toSideEdited)
	}
	return nil
}

func (d *twoRollTrimData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	if _, err := ctx.Seq.RemoveClip(d.track, d.index-1); err != nil {
		return err
	}
	switch {
	case !d.nonEditSideBlank:
		if err := ctx.Seq.InsertClip(d.track, d.fromClip, d.index-1, d.fromClip.ClipIn, d.fromClip.ClipOut-d.delta); err != nil {
			return err
		}
		if err := ctx.Seq.InsertClip(d.track, d.toClip, d.index, d.toClip.ClipIn-d.delta, d.toClip.ClipOut); err != nil {
			return err
		}
	case d.toClip.IsBlank():
		if err := ctx.Seq.InsertClip(d.track, d.fromClip, d.index-1, d.fromClip.ClipIn, d.fromClip.ClipOut-d.delta); err != nil {
			return err
		}
		if _, err := ctx.Seq.InsertBlank(d.track, d.index, d.toLength); err != nil {
			return err
		}
	default:
		if _, err := ctx.Seq.InsertBlank(d.track, d.index-1, d.fromLength); err != nil {
			return err
		}
		if err := ctx.Seq.InsertClip(d.track, d.toClip, d.index, d.toClip.ClipIn-d.delta, d.toClip.ClipOut); err != nil {
			return err
		}
	}
	return nil
}

// --- trim start ---

type trimStartData struct {
	track    *timeline.Track
	clip     *timeline.Clip
	index    int
	delta    int
	undoDone UndoDone
}

// NewTrimStart moves a clip's in point by delta frames.
func NewTrimStart(track *timeline.Track, clip *timeline.Clip, index, delta int, undoDone UndoDone) *Action {
	d := &trimStartData{track: track, clip: clip, index: index, delta: delta, undoDone: undoDone}
	return newAction("trim clip start", d.redo, d.undo)
}

func (d *trimStartData) redo(ctx *Context, first bool) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	if err := ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn+d.delta, d.clip.ClipOut); err != nil {
		return err
	}
	if first && d.undoDone != nil {
		d.undoDone(d.track, d.index, true)
	}
	return nil
}

func (d *trimStartData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn-d.delta, d.clip.ClipOut)
}

// --- trim end ---

type trimEndData struct {
	track    *timeline.Track
	clip     *timeline.Clip
	index    int
	delta    int
	undoDone UndoDone
}

// NewTrimEnd moves a clip's out point by delta frames.
func NewTrimEnd(track *timeline.Track, clip *timeline.Clip, index, delta int, undoDone UndoDone) *Action {
	d := &trimEndData{track: track, clip: clip, index: index, delta: delta, undoDone: undoDone}
	return newAction("trim clip end", d.redo, d.undo)
}

func (d *trimEndData) redo(ctx *Context, first bool) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	if err := ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn, d.clip.ClipOut+d.delta); err != nil {
		return err
	}
	if first && d.undoDone != nil {
		d.undoDone(d.track, d.index+1, false)
	}
	return nil
}

func (d *trimEndData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn, d.clip.ClipOut-d.delta)
}

// --- trim end over blanks ---

type trimEndOverBlanksData struct {
	track *timeline.Track
	clip  *timeline.Clip
	index int

	removedLengths []int
}

// NewTrimEndOverBlanks removes every blank following the clip at index
// and extends the clip over the freed frames.
func NewTrimEndOverBlanks(track *timeline.Track, clip *timeline.Clip, index int) *Action {
	d := &trimEndOverBlanksData{track: track, clip: clip, index: index}
	return newAction("trim clip end", d.redo, d.undo)
}

func (d *trimEndOverBlanksData) redo(ctx *Context, first bool) error {
	// The stretch starts at the next index; that is where the blanks
	// being consumed live.
	lengths, err := ctx.Seq.RemoveConsecutiveBlanks(d.track, d.index+1)
	if err != nil {
		return err
	}
	d.removedLengths = lengths
	total := 0
	for _, l := range lengths {
		total += l
	}

	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn, d.clip.ClipOut+total)
}

func (d *trimEndOverBlanksData) undo(ctx *Context) error {
	total := 0
	for i, l := range d.removedLengths {
		if _, err := ctx.Seq.InsertBlank(d.track, d.index+1+i, l); err != nil {
			return err
		}
		total += l
	}

	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.index, d.clip.ClipIn, d.clip.ClipOut-total)
}

// --- trim start over blanks ---

type trimStartOverBlanksData struct {
	track      *timeline.Track
	clip       *timeline.Clip
	blankIndex int

	removedLengths []int
	totalLength    int
}

// NewTrimStartOverBlanks removes every blank preceding the clip,
// starting at blankIndex, and extends the clip backwards over the freed
// frames.
func NewTrimStartOverBlanks(track *timeline.Track, clip *timeline.Clip, blankIndex int) *Action {
	d := &trimStartOverBlanksData{track: track, clip: clip, blankIndex: blankIndex}
	return newAction("trim clip start", d.redo, d.undo)
}

func (d *trimStartOverBlanksData) redo(ctx *Context, first bool) error {
	lengths, err := ctx.Seq.RemoveConsecutiveBlanks(d.track, d.blankIndex)
	if err != nil {
		return err
	}
	d.removedLengths = lengths
	d.totalLength = 0
	for _, l := range lengths {
		d.totalLength += l
	}

	// The clip has shifted down to blankIndex.
	if _, err := ctx.Seq.RemoveClip(d.track, d.blankIndex); err != nil {
		return err
	}
	return ctx.Seq.InsertClip(d.track, d.clip, d.blankIndex, d.clip.ClipIn-d.totalLength, d.clip.ClipOut)
}

func (d *trimStartOverBlanksData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.blankIndex); err != nil {
		return err
	}
	if err := ctx.Seq.InsertClip(d.track, d.clip, d.blankIndex, d.clip.ClipIn+d.totalLength, d.clip.ClipOut); err != nil {
		return err
	}

	for i, l := range d.removedLengths {
		if _, err := ctx.Seq.InsertBlank(d.track, d.blankIndex+i, l); err != nil {
			return err
		}
	}
	return nil
}
