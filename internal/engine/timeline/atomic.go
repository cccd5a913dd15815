package timeline

import (
	"fmt"
)

// Atomic segment operations. Each one mutates the track's clip list and
// the engine's native track together, index for index, and verifies the
// two representations still agree before returning. These are the only
// legal mutators of a track.

// AppendClip adds a clip at the end of a track with the given source
// bounds.
func (s *Sequence) AppendClip(t *Track, c *Clip, in, out int) error {
	if out < in {
		return fmt.Errorf("append clip: negative length (in %d, out %d)", in, out)
	}
	c.ClipIn = in
	c.ClipOut = out
	t.clips = append(t.clips, c)
	t.engine.Append(c, in, out)
	s.sync.ClipAdded(c, t)
	return s.checkMirror(t)
}

// InsertClip places a clip at index with the given source bounds.
func (s *Sequence) InsertClip(t *Track, c *Clip, index, in, out int) error {
	if index < 0 || index > len(t.clips) {
		return fmt.Errorf("insert clip: index %d out of range [0,%d]", index, len(t.clips))
	}
	if out < in {
		return fmt.Errorf("insert clip: negative length (in %d, out %d)", in, out)
	}
	c.ClipIn = in
	c.ClipOut = out
	t.clips = append(t.clips, nil)
	copy(t.clips[index+1:], t.clips[index:])
	t.clips[index] = c
	t.engine.Insert(c, index, in, out)
	s.sync.ClipAdded(c, t)
	return s.checkMirror(t)
}

// InsertBlank places a gap of the given length at index and returns the
// blank segment.
func (s *Sequence) InsertBlank(t *Track, index, length int) (*Clip, error) {
	if index < 0 || index > len(t.clips) {
		return nil, fmt.Errorf("insert blank: index %d out of range [0,%d]", index, len(t.clips))
	}
	if length < 1 {
		return nil, fmt.Errorf("insert blank: length %d < 1", length)
	}
	blank := &Clip{
		ClipIn:  0,
		ClipOut: length - 1,
		Blank:   true,
	}
	t.clips = append(t.clips, nil)
	copy(t.clips[index+1:], t.clips[index:])
	t.clips[index] = blank
	t.engine.InsertBlank(index, length-1)
	return blank, s.checkMirror(t)
}

// RemoveClip removes and returns the segment at index.
func (s *Sequence) RemoveClip(t *Track, index int) (*Clip, error) {
	if len(t.clips) == 0 {
		return nil, fmt.Errorf("remove clip: %w", ErrEmptyTrack)
	}
	if index < 0 || index >= len(t.clips) {
		return nil, fmt.Errorf("remove clip: index %d out of range [0,%d)", index, len(t.clips))
	}
	t.engine.Remove(index)
	c := t.clips[index]
	t.clips = append(t.clips[:index], t.clips[index+1:]...)
	if s.onClipRemoved != nil {
		s.onClipRemoved(c)
	}
	s.sync.ClipRemoved(c)
	return c, s.checkMirror(t)
}

// Cut splits the clip at index in two by removing it and re-inserting
// the original truncated to [in, cutFrame-1] and the clone covering
// [cutFrame, originalOut]. cutFrame is a source frame of the clip.
func (s *Sequence) Cut(t *Track, index, cutFrame int, c, clone *Clip) error {
	if _, err := s.RemoveClip(t, index); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	secondOut := c.ClipOut // save before the first insert narrows it
	if err := s.InsertClip(t, c, index, c.ClipIn, cutFrame-1); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	if err := s.InsertClip(t, clone, index+1, cutFrame, secondOut); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	return nil
}

// CutBlank splits the blank at index in two. Both halves are fresh
// zero-origin blanks sized by subtraction; blanks cannot be resized in
// place.
func (s *Sequence) CutBlank(t *Track, index, cutFrame int, blank *Clip) error {
	if _, err := s.RemoveClip(t, index); err != nil {
		return fmt.Errorf("cut blank: %w", err)
	}
	firstLength := cutFrame
	secondLength := blank.ClipOut - cutFrame + 1 // cut frame belongs to the second half
	if _, err := s.InsertBlank(t, index, firstLength); err != nil {
		return fmt.Errorf("cut blank: %w", err)
	}
	if _, err := s.InsertBlank(t, index+1, secondLength); err != nil {
		return fmt.Errorf("cut blank: %w", err)
	}
	return nil
}

// frameOnCut reports whether a source frame coincides with a segment
// boundary of the clip.
func frameOnCut(c *Clip, clipFrame int) bool {
	if clipFrame == c.ClipIn {
		return true
	}
	if clipFrame == c.ClipOut+1 { // out is inclusive
		return true
	}
	return false
}

// CutTrackAtFrame cuts the segment containing the given timeline frame.
// If the frame already coincides with a segment boundary no cut is made
// and ok is false; otherwise the segment is split and the pre-split
// segment's original bounds are returned so the cut can be reversed.
func (s *Sequence) CutTrackAtFrame(t *Track, frame int) (origIn, origOut int, ok bool, err error) {
	index := t.ClipIndexAt(frame)
	if index >= len(t.clips) {
		return 0, 0, false, fmt.Errorf("cut track at %d: frame past track end %d", frame, t.Length())
	}
	c := t.clips[index]
	origIn, origOut = c.ClipIn, c.ClipOut
	clipFrame := frame - t.ClipStart(index) + c.ClipIn

	if frameOnCut(c, clipFrame) {
		return 0, 0, false, nil
	}
	if c.IsBlank() {
		if err := s.CutBlank(t, index, clipFrame, c); err != nil {
			return 0, 0, false, err
		}
	} else {
		clone := s.CreateClipClone(c)
		if err := s.Cut(t, index, clipFrame, c, clone); err != nil {
			return 0, 0, false, err
		}
	}
	return origIn, origOut, true, nil
}

// RemoveTrailingBlanks removes segments from the end of the track while
// they are blanks. It is a no-op on an empty or blank-free track and
// returns the number of blanks removed.
func (s *Sequence) RemoveTrailingBlanks(t *Track) (int, error) {
	removed := 0
	for len(t.clips) > 0 && t.clips[len(t.clips)-1].IsBlank() {
		if _, err := s.RemoveClip(t, len(t.clips)-1); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// RemoveConsecutiveBlanks removes every blank starting at index while
// segments remain blank, returning their lengths in removal order so
// identical blanks can be re-inserted on undo.
func (s *Sequence) RemoveConsecutiveBlanks(t *Track, index int) ([]int, error) {
	var lengths []int
	for index < len(t.clips) && t.clips[index].IsBlank() {
		lengths = append(lengths, t.clips[index].Length())
		if _, err := s.RemoveClip(t, index); err != nil {
			return lengths, err
		}
	}
	return lengths, nil
}

// SetClipInOut resizes the clip at index in place in both
// representations. Not valid for blanks.
func (s *Sequence) SetClipInOut(t *Track, index, in, out int) error {
	if index < 0 || index >= len(t.clips) {
		return fmt.Errorf("set in/out: index %d out of range [0,%d)", index, len(t.clips))
	}
	c := t.clips[index]
	if c.IsBlank() {
		return fmt.Errorf("set in/out: segment %d is a blank and cannot be resized in place", index)
	}
	if out < in {
		return fmt.Errorf("set in/out: negative length (in %d, out %d)", in, out)
	}
	c.ClipIn = in
	c.ClipOut = out
	t.engine.SetInAndOut(index, in, out)
	return s.checkMirror(t)
}

// checkMirror is the cheap post-mutation desync check run after every
// atomic operation. A count mismatch is fatal and never masked.
func (s *Sequence) checkMirror(t *Track) error {
	if got, want := t.engine.Count(), len(t.clips); got != want {
		return fmt.Errorf("track %d: %w: engine has %d segments, sequence has %d", t.ID, ErrDesync, got, want)
	}
	return nil
}
