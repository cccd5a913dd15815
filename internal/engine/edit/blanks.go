package edit

import (
	"fmt"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// --- consolidate selected blanks ---

type consolidateBlanksData struct {
	track *timeline.Track
	index int

	removedLengths []int
}

// NewConsolidateBlanks merges the run of consecutive blanks starting at
// index into one blank of their summed length.
func NewConsolidateBlanks(track *timeline.Track, index int) *Action {
	d := &consolidateBlanksData{track: track, index: index}
	return newAction("consolidate blanks", d.redo, d.undo)
}

func (d *consolidateBlanksData) redo(ctx *Context, first bool) error {
	if d.index < 0 || d.index >= d.track.Len() {
		return fmt.Errorf("consolidate blanks: index %d out of range [0,%d)", d.index, d.track.Len())
	}
	if !d.track.Clip(d.index).IsBlank() {
		return fmt.Errorf("consolidate blanks: segment %d on track %d is not a blank", d.index, d.track.ID)
	}

	lengths, err := ctx.Seq.RemoveConsecutiveBlanks(d.track, d.index)
	if err != nil {
		return err
	}
	d.removedLengths = lengths
	total := 0
	for _, l := range lengths {
		total += l
	}
	_, err = ctx.Seq.InsertBlank(d.track, d.index, total)
	return err
}

func (d *consolidateBlanksData) undo(ctx *Context) error {
	if _, err := ctx.Seq.RemoveClip(d.track, d.index); err != nil {
		return err
	}
	for i, l := range d.removedLengths {
		if _, err := ctx.Seq.InsertBlank(d.track, d.index+i, l); err != nil {
			return err
		}
	}
	return nil
}

// --- consolidate all blanks ---

// consolidation records one merged blank run for reversal.
type consolidation struct {
	track          *timeline.Track
	index          int
	removedLengths []int
}

type consolidateAllBlanksData struct {
	consolidations []consolidation
}

// NewConsolidateAllBlanks merges every run of two or more consecutive
// blanks on every track of the sequence.
func NewConsolidateAllBlanks() *Action {
	d := &consolidateAllBlanksData{}
	return newAction("consolidate blanks", d.redo, d.undo)
}

func (d *consolidateAllBlanksData) redo(ctx *Context, first bool) error {
	d.consolidations = nil
	for _, track := range ctx.Seq.Tracks {
		for i := 0; i < track.Len(); i++ {
			if !track.Clip(i).IsBlank() {
				continue
			}
			if i+1 >= track.Len() || !track.Clip(i+1).IsBlank() {
				continue // single blank, nothing to merge
			}
			lengths, err := ctx.Seq.RemoveConsecutiveBlanks(track, i)
			if err != nil {
				return err
			}
			total := 0
			for _, l := range lengths {
				total += l
			}
			if _, err := ctx.Seq.InsertBlank(track, i, total); err != nil {
				return err
			}
			d.consolidations = append(d.consolidations, consolidation{track: track, index: i, removedLengths: lengths})
		}
	}
	return nil
}

func (d *consolidateAllBlanksData) undo(ctx *Context) error {
	for i := len(d.consolidations) - 1; i >= 0; i-- {
		c := d.consolidations[i]
		if _, err := ctx.Seq.RemoveClip(c.track, c.index); err != nil {
			return err
		}
		for j, l := range c.removedLengths {
			if _, err := ctx.Seq.InsertBlank(c.track, c.index+j, l); err != nil {
				return err
			}
		}
	}
	return nil
}
