package timeline

import (
	"github.com/google/uuid"
)

// Clip is a single segment on a track: either a media clip with source
// bounds or a blank (gap) of a given length.
//
// ClipIn and ClipOut are inclusive source frames, so a clip's length is
// ClipOut - ClipIn + 1. Blanks keep ClipIn fixed at 0 and ClipOut at
// length - 1 by convention.
type Clip struct {
	ID   uuid.UUID
	Name string
	Path string // media source reference; empty for blanks

	ClipIn  int
	ClipOut int

	// Blank marks a gap segment. Blanks carry no source, filters or
	// sync data and cannot be resized in place.
	Blank bool

	Filters    []*Filter
	MuteFilter *Filter
	SyncData   *SyncData
}

// Length returns the clip's length in frames.
func (c *Clip) Length() int {
	return c.ClipOut - c.ClipIn + 1
}

// IsBlank reports whether the segment is a gap.
func (c *Clip) IsBlank() bool {
	return c.Blank
}

// SyncState describes how a child clip relates to its sync master.
type SyncState int

const (
	// SyncNone means the clip has no sync binding.
	SyncNone SyncState = iota
	// SyncCorrect means the clip sits at its recorded offset.
	SyncCorrect
	// SyncDrifted means the clip or its master has moved since the
	// offset was recorded.
	SyncDrifted
)

// SyncData binds a child clip's position to a master clip.
type SyncData struct {
	// PosOffset is the child's timeline start minus the master's
	// timeline start at the time the binding was made.
	PosOffset int

	// Master clip bounds at binding time, kept for audio splices.
	ClipIn  int
	ClipOut int

	MasterClip       *Clip
	MasterAudioIndex int

	State SyncState
}
