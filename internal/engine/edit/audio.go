package edit

import (
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// --- audio splice ---

type audioSpliceData struct {
	parentClip *timeline.Clip
	audioClip  *timeline.Clip
	toTrack    *timeline.Track
	overIn     int
	overOut    int

	inIndex int
	bounds  overwriteBounds
	removed []*timeline.Clip
}

// NewAudioSplice overwrites the destination track with a derived
// audio-only clip at the parent clip's bounds and mutes the parent's
// own audio.
func NewAudioSplice(parentClip, audioClip *timeline.Clip, toTrack *timeline.Track, overIn, overOut int) *Action {
	d := &audioSpliceData{parentClip: parentClip, audioClip: audioClip, toTrack: toTrack, overIn: overIn, overOut: overOut}
	return newAction("splice audio", d.redo, d.undo)
}

func (d *audioSpliceData) redo(ctx *Context, first bool) error {
	if err := d.splice(ctx); err != nil {
		return err
	}
	doClipMute(ctx, d.parentClip, ctx.Seq.CreateMuteFilter())
	_, err := ctx.Seq.RemoveTrailingBlanks(d.toTrack)
	return err
}

func (d *audioSpliceData) undo(ctx *Context) error {
	if err := d.unsplice(ctx); err != nil {
		return err
	}
	if err := doClipUnmute(ctx, d.parentClip); err != nil {
		return err
	}
	_, err := ctx.Seq.RemoveTrailingBlanks(d.toTrack)
	return err
}

// splice is the overwrite part shared with the sync variant: boundary
// cuts, range splice-out and the audio clip insertion at the parent's
// bounds.
func (d *audioSpliceData) splice(ctx *Context) error {
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
	d.inIndex = inIndex

	return ctx.Seq.InsertClip(d.toTrack, d.audioClip, d.inIndex, d.parentClip.ClipIn, d.parentClip.ClipOut)
}

func (d *audioSpliceData) unsplice(ctx *Context) error {
	inIndex := d.toTrack.ClipIndexAt(d.overIn)
	if _, err := ctx.Seq.RemoveClip(d.toTrack, inIndex); err != nil {
		return err
	}
	return restoreOverwriteRange(ctx, d.toTrack, inIndex, d.bounds, d.removed)
}

// --- audio sync splice ---

type audioSyncSpliceData struct {
	audioSpliceData

	fromTrack        *timeline.Track
	parentIndex      int
	parentAudioIndex int
}

// NewAudioSyncSplice is an audio splice that additionally binds the
// derived audio clip to its parent with zero-offset sync data, so later
// moves of the parent pull the audio along through resync.
func NewAudioSyncSplice(parentClip, audioClip *timeline.Clip, overIn, overOut int, toTrack, fromTrack *timeline.Track, parentIndex, parentAudioIndex int) *Action {
	d := &audioSyncSpliceData{
		audioSpliceData: audioSpliceData{
			parentClip: parentClip,
			audioClip:  audioClip,
			toTrack:    toTrack,
			overIn:     overIn,
			overOut:    overOut,
		},
		fromTrack:        fromTrack,
		parentIndex:      parentIndex,
		parentAudioIndex: parentAudioIndex,
	}
	return newAction("splice audio", d.redo, d.undo)
}

func (d *audioSyncSpliceData) redo(ctx *Context, first bool) error {
	d.audioClip.SyncData = &timeline.SyncData{
		PosOffset:        0,
		ClipIn:           d.parentClip.ClipIn,
		ClipOut:          d.parentClip.ClipOut,
		MasterClip:       d.parentClip,
		MasterAudioIndex: d.parentAudioIndex,
		State:            timeline.SyncCorrect,
	}

	if err := d.splice(ctx); err != nil {
		return err
	}
	doClipMute(ctx, d.parentClip, ctx.Seq.CreateMuteFilter())
	_, err := ctx.Seq.RemoveTrailingBlanks(d.toTrack)
	return err
}

func (d *audioSyncSpliceData) undo(ctx *Context) error {
	if err := d.unsplice(ctx); err != nil {
		return err
	}
	if err := doClipUnmute(ctx, d.parentClip); err != nil {
		return err
	}
	d.audioClip.SyncData = nil
	ctx.Seq.Sync().ClipSyncCleared(d.audioClip)
	_, err := ctx.Seq.RemoveTrailingBlanks(d.toTrack)
	return err
}
