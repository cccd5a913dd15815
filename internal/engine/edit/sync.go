package edit

import (
	"fmt"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// --- set sync ---

type setSyncData struct {
	childTrack  *timeline.Track
	childIndex  int
	parentTrack *timeline.Track
	parentIndex int
}

// NewSetSync binds the clip at childIndex to the clip at parentIndex as
// its sync master, recording the current position offset between them.
func NewSetSync(childTrack *timeline.Track, childIndex int, parentTrack *timeline.Track, parentIndex int) *Action {
	d := &setSyncData{childTrack: childTrack, childIndex: childIndex, parentTrack: parentTrack, parentIndex: parentIndex}
	return newAction("set sync", d.redo, d.undo)
}

func (d *setSyncData) redo(ctx *Context, first bool) error {
	if d.childIndex < 0 || d.childIndex >= d.childTrack.Len() {
		return fmt.Errorf("set sync: child index %d out of range [0,%d)", d.childIndex, d.childTrack.Len())
	}
	if d.parentIndex < 0 || d.parentIndex >= d.parentTrack.Len() {
		return fmt.Errorf("set sync: parent index %d out of range [0,%d)", d.parentIndex, d.parentTrack.Len())
	}
	childClip := d.childTrack.Clip(d.childIndex)
	parentClip := d.parentTrack.Clip(d.parentIndex)

	// Track-relative starts minus in frames put both clips on the same
	// source-time axis.
	childStart := d.childTrack.ClipStart(d.childIndex) - childClip.ClipIn
	parentStart := d.parentTrack.ClipStart(d.parentIndex) - parentClip.ClipIn

	childClip.SyncData = &timeline.SyncData{
		PosOffset:  childStart - parentStart,
		MasterClip: parentClip,
		State:      timeline.SyncCorrect,
	}
	ctx.Seq.Sync().ClipAdded(childClip, d.childTrack)
	return nil
}

func (d *setSyncData) undo(ctx *Context) error {
	childClip := d.childTrack.Clip(d.childIndex)
	childClip.SyncData = nil
	ctx.Seq.Sync().ClipSyncCleared(childClip)
	return nil
}

// --- clear sync ---

type clearSyncData struct {
	childClip  *timeline.Clip
	childTrack *timeline.Track

	saved *timeline.SyncData
}

// NewClearSync unbinds a child clip from its sync master.
func NewClearSync(childClip *timeline.Clip, childTrack *timeline.Track) *Action {
	d := &clearSyncData{childClip: childClip, childTrack: childTrack}
	return newAction("clear sync", d.redo, d.undo)
}

func (d *clearSyncData) redo(ctx *Context, first bool) error {
	d.saved = d.childClip.SyncData
	d.childClip.SyncData = nil
	ctx.Seq.Sync().ClipSyncCleared(d.childClip)
	return nil
}

func (d *clearSyncData) undo(ctx *Context) error {
	d.childClip.SyncData = d.saved
	ctx.Seq.Sync().ClipAdded(d.childClip, d.childTrack)
	return nil
}

// --- resync ---

// buildAndRunSyncActions turns the resync data into overwrite-moves
// repositioning each drifted clip, running every generated action's
// forward operation immediately. Clips already at their recorded offset
// are skipped.
func buildAndRunSyncActions(ctx *Context, data []timeline.ResyncData) ([]*Action, error) {
	var actions []*Action
	for _, rd := range data {
		if rd.Clip.SyncData == nil {
			continue
		}
		if rd.PosOffset == rd.Clip.SyncData.PosOffset {
			continue
		}

		diff := rd.PosOffset - rd.Clip.SyncData.PosOffset
		overIn := rd.Track.ClipStart(rd.Index) - diff
		overOut := overIn + rd.Clip.Length()

		a := NewOverwriteMove(rd.Track, overIn, overOut, rd.Index, rd.Index, nil)
		if err := a.runForward(ctx); err != nil {
			return actions, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// replaySyncActions re-runs a memoized batch forward.
func replaySyncActions(ctx *Context, actions []*Action) error {
	for _, a := range actions {
		if err := a.runForward(ctx); err != nil {
			return err
		}
	}
	return nil
}

// reverseSyncActions unwinds a memoized batch in strict reverse order.
func reverseSyncActions(ctx *Context, actions []*Action) error {
	for i := len(actions) - 1; i >= 0; i-- {
		if err := actions[i].runBackward(ctx); err != nil {
			return err
		}
	}
	return nil
}

type resyncAllData struct {
	actions []*Action
}

// NewResyncAll repositions every child clip whose offset has drifted
// from its master. The generated moves are memoized on the first run
// and replayed as one unit afterwards.
func NewResyncAll() *Action {
	d := &resyncAllData{}
	return newAction("resync all", d.redo, d.undo)
}

func (d *resyncAllData) redo(ctx *Context, first bool) error {
	if !first {
		return replaySyncActions(ctx, d.actions)
	}
	if ctx.Resync == nil {
		return fmt.Errorf("resync all: no resync source in context")
	}
	actions, err := buildAndRunSyncActions(ctx, ctx.Resync.DataList())
	d.actions = actions
	return err
}

func (d *resyncAllData) undo(ctx *Context) error {
	return reverseSyncActions(ctx, d.actions)
}

type resyncClipsData struct {
	clips []*timeline.Clip

	actions []*Action
}

// NewResyncClips repositions the given child clips whose offsets have
// drifted from their masters.
func NewResyncClips(clips []*timeline.Clip) *Action {
	d := &resyncClipsData{clips: clips}
	return newAction("resync clips", d.redo, d.undo)
}

func (d *resyncClipsData) redo(ctx *Context, first bool) error {
	if !first {
		return replaySyncActions(ctx, d.actions)
	}
	if ctx.Resync == nil {
		return fmt.Errorf("resync clips: no resync source in context")
	}
	actions, err := buildAndRunSyncActions(ctx, ctx.Resync.DataListForClips(d.clips))
	d.actions = actions
	return err
}

func (d *resyncClipsData) undo(ctx *Context) error {
	return reverseSyncActions(ctx, d.actions)
}
