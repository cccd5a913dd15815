package edit

import (
	"testing"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

func TestAudioSpliceOntoEmptyTrack(t *testing.T) {
	ctx, master, _ := newTestContext()
	audioTrack := ctx.Seq.AddTrack(timeline.TrackAudio)
	parent := appendClip(ctx, master, "talk", 0, 19)
	audio := ctx.Seq.NewClip(parent.Path, parent.Name+" audio")

	a := NewAudioSplice(parent, audio, audioTrack, 0, 20)
	if err := a.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := trackLengths(audioTrack); !equalInts(got, []int{20}) {
		t.Fatalf("audio track = %v, want [20]", got)
	}
	if audioTrack.Clip(0) != audio || audio.ClipIn != 0 || audio.ClipOut != 19 {
		t.Errorf("audio clip bounds = (%d,%d), want parent's (0,19)", audio.ClipIn, audio.ClipOut)
	}
	if parent.MuteFilter == nil || !parent.MuteFilter.IsMute() {
		t.Error("parent should be muted after the splice")
	}

	if err := a.Undo(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if audioTrack.Len() != 0 {
		t.Errorf("audio track after undo = %v, want empty", trackLengths(audioTrack))
	}
	if parent.MuteFilter != nil {
		t.Error("undo should unmute the parent")
	}

	if err := a.Redo(ctx); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := trackLengths(audioTrack); !equalInts(got, []int{20}) {
		t.Errorf("audio track after redo = %v, want [20]", got)
	}
	if parent.MuteFilter == nil {
		t.Error("redo should mute the parent again")
	}
}

func TestAudioSpliceOverExistingAudio(t *testing.T) {
	ctx, master, _ := newTestContext()
	audioTrack := ctx.Seq.AddTrack(timeline.TrackAudio)
	parent := appendClip(ctx, master, "talk", 0, 19)
	x := appendClip(ctx, audioTrack, "music", 0, 29)
	audio := ctx.Seq.NewClip(parent.Path, parent.Name+" audio")

	// Parent sits at [5,25) on the timeline; the splice carves that
	// range out of the music clip.
	a := NewAudioSplice(parent, audio, audioTrack, 5, 25)
	if err := a.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := trackLengths(audioTrack); !equalInts(got, []int{5, 20, 5}) {
		t.Fatalf("audio track = %v, want [5 20 5]", got)
	}
	if audioTrack.Clip(1) != audio {
		t.Error("spliced audio should sit between the music halves")
	}

	if err := a.Undo(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := trackLengths(audioTrack); !equalInts(got, []int{30}) {
		t.Fatalf("audio track after undo = %v, want [30]", got)
	}
	if audioTrack.Clip(0) != x || x.ClipIn != 0 || x.ClipOut != 29 {
		t.Errorf("music clip after undo = (%d,%d), want original (0,29)", x.ClipIn, x.ClipOut)
	}
}

func TestAudioSyncSpliceBindsChild(t *testing.T) {
	ctx, master, audioTrack, reg := newSyncContext()
	parent := appendClip(ctx, master, "talk", 0, 19)
	audio := ctx.Seq.NewClip(parent.Path, parent.Name+" audio")

	a := NewAudioSyncSplice(parent, audio, 0, 20, audioTrack, master, 0, 1)
	if err := a.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}

	sd := audio.SyncData
	if sd == nil {
		t.Fatal("spliced audio clip has no sync data")
	}
	if sd.PosOffset != 0 || sd.MasterClip != parent || sd.MasterAudioIndex != 1 {
		t.Errorf("sync data = offset %d master %v audio index %d", sd.PosOffset, sd.MasterClip, sd.MasterAudioIndex)
	}
	if sd.ClipIn != parent.ClipIn || sd.ClipOut != parent.ClipOut {
		t.Errorf("sync bounds = (%d,%d), want parent's (%d,%d)", sd.ClipIn, sd.ClipOut, parent.ClipIn, parent.ClipOut)
	}
	if sd.State != timeline.SyncCorrect {
		t.Errorf("state = %v, want SyncCorrect", sd.State)
	}
	// The insert registered the child because the sync data was set
	// before the splice ran.
	if len(reg.Children()) != 1 {
		t.Errorf("registry has %d children, want 1", len(reg.Children()))
	}

	if err := a.Undo(ctx); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if audio.SyncData != nil {
		t.Error("undo should clear the child's sync data")
	}
	if len(reg.Children()) != 0 {
		t.Error("undo should unregister the child")
	}
	if audioTrack.Len() != 0 {
		t.Errorf("audio track after undo = %v, want empty", trackLengths(audioTrack))
	}
	if parent.MuteFilter != nil {
		t.Error("undo should unmute the parent")
	}
}
