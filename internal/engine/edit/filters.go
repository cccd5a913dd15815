package edit

import (
	"fmt"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// FilterEditDone is invoked after a filter edit with the clip and the
// index the effect-stack editor should show.
type FilterEditDone func(clip *timeline.Clip, filterIndex int)

func notifyFilterDone(fn FilterEditDone, clip *timeline.Clip, index int) {
	if fn != nil {
		fn(clip, index)
	}
}

// --- add filter ---

type addFilterData struct {
	clip       *timeline.Clip
	info       timeline.FilterInfo
	filterDone FilterEditDone

	// filter is created on the first run only so undo/redo cycle over
	// the same object.
	filter *timeline.Filter
}

// NewAddFilter attaches a new filter of the given type to a clip.
func NewAddFilter(clip *timeline.Clip, info timeline.FilterInfo, filterDone FilterEditDone) *Action {
	d := &addFilterData{clip: clip, info: info, filterDone: filterDone}
	return newAction("add filter", d.redo, d.undo)
}

func (d *addFilterData) redo(ctx *Context, first bool) error {
	if first {
		d.filter = ctx.Seq.CreateFilter(d.info)
	}
	ctx.Seq.AttachFilter(d.clip, d.filter)
	d.clip.Filters = append(d.clip.Filters, d.filter)
	notifyFilterDone(d.filterDone, d.clip, len(d.clip.Filters)-1)
	return nil
}

func (d *addFilterData) undo(ctx *Context) error {
	ctx.Seq.DetachFilter(d.clip, d.filter)
	if err := removeFromFilterList(d.clip, d.filter); err != nil {
		return err
	}
	notifyFilterDone(d.filterDone, d.clip, len(d.clip.Filters)-1)
	return nil
}

// NewAddMultipartFilter attaches a multipart filter, whose engine parts
// are attached and detached as a unit.
func NewAddMultipartFilter(clip *timeline.Clip, info timeline.FilterInfo, filterDone FilterEditDone) *Action {
	d := &addMultipartFilterData{clip: clip, info: info, filterDone: filterDone}
	return newAction("add filter", d.redo, d.undo)
}

type addMultipartFilterData struct {
	clip       *timeline.Clip
	info       timeline.FilterInfo
	filterDone FilterEditDone

	filter *timeline.Filter
}

func (d *addMultipartFilterData) redo(ctx *Context, first bool) error {
	if first {
		d.filter = ctx.Seq.CreateMultipartFilter(d.info)
	}
	ctx.Seq.AttachFilter(d.clip, d.filter)
	d.clip.Filters = append(d.clip.Filters, d.filter)
	notifyFilterDone(d.filterDone, d.clip, len(d.clip.Filters)-1)
	return nil
}

func (d *addMultipartFilterData) undo(ctx *Context) error {
	ctx.Seq.DetachFilter(d.clip, d.filter)
	if err := removeFromFilterList(d.clip, d.filter); err != nil {
		return err
	}
	notifyFilterDone(d.filterDone, d.clip, len(d.clip.Filters)-1)
	return nil
}

func removeFromFilterList(clip *timeline.Clip, f *timeline.Filter) error {
	for i, cf := range clip.Filters {
		if cf == f {
			clip.Filters = append(clip.Filters[:i], clip.Filters[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("filter %s not on clip %s", f.ID, clip.ID)
}

// --- remove filter ---

type removeFilterData struct {
	clip       *timeline.Clip
	index      int
	filterDone FilterEditDone

	filter *timeline.Filter
}

// NewRemoveFilter detaches the filter at index from a clip.
func NewRemoveFilter(clip *timeline.Clip, index int, filterDone FilterEditDone) *Action {
	d := &removeFilterData{clip: clip, index: index, filterDone: filterDone}
	return newAction("remove filter", d.redo, d.undo)
}

func (d *removeFilterData) redo(ctx *Context, first bool) error {
	if d.index < 0 || d.index >= len(d.clip.Filters) {
		return fmt.Errorf("remove filter: index %d out of range [0,%d)", d.index, len(d.clip.Filters))
	}
	// Reorderings go through the engine as detach-all/attach-all so the
	// attachment list always matches the filter list.
	ctx.Seq.DetachAllFilters(d.clip)
	d.filter = d.clip.Filters[d.index]
	d.clip.Filters = append(d.clip.Filters[:d.index], d.clip.Filters[d.index+1:]...)
	ctx.Seq.AttachAllFilters(d.clip)
	notifyFilterDone(d.filterDone, d.clip, len(d.clip.Filters)-1)
	return nil
}

func (d *removeFilterData) undo(ctx *Context) error {
	ctx.Seq.DetachAllFilters(d.clip)
	if d.index <= len(d.clip.Filters) {
		d.clip.Filters = append(d.clip.Filters, nil)
		copy(d.clip.Filters[d.index+1:], d.clip.Filters[d.index:])
		d.clip.Filters[d.index] = d.filter
	} else {
		d.clip.Filters = append(d.clip.Filters, d.filter)
	}
	ctx.Seq.AttachAllFilters(d.clip)
	notifyFilterDone(d.filterDone, d.clip, d.index)
	return nil
}

// --- remove multiple filters ---

type removeMultipleFiltersData struct {
	clips []*timeline.Clip

	// clipFilters holds each clip's original filter list. The exact
	// slices are restored on undo, not copies.
	clipFilters [][]*timeline.Filter
}

// NewRemoveMultipleFilters detaches and clears the filter lists of a
// batch of clips.
func NewRemoveMultipleFilters(clips []*timeline.Clip) *Action {
	d := &removeMultipleFiltersData{clips: clips}
	return newAction("remove filters", d.redo, d.undo)
}

func (d *removeMultipleFiltersData) redo(ctx *Context, first bool) error {
	d.clipFilters = nil
	for _, clip := range d.clips {
		ctx.Seq.DetachAllFilters(clip)
		d.clipFilters = append(d.clipFilters, clip.Filters)
		clip.Filters = nil
		if ctx.GUI != nil {
			ctx.GUI.ClipRemovedFromEditors(clip)
		}
	}
	return nil
}

func (d *removeMultipleFiltersData) undo(ctx *Context) error {
	for i, clip := range d.clips {
		clip.Filters = d.clipFilters[i]
		ctx.Seq.AttachAllFilters(clip)
	}
	return nil
}

// --- clone filters ---

type cloneFiltersData struct {
	clip   *timeline.Clip
	source *timeline.Clip

	cloned []*timeline.Filter
	old    []*timeline.Filter
}

// NewCloneFilters replaces a clip's filters with copies of another
// clip's filters.
func NewCloneFilters(clip, source *timeline.Clip) *Action {
	d := &cloneFiltersData{clip: clip, source: source}
	return newAction("clone filters", d.redo, d.undo)
}

func (d *cloneFiltersData) redo(ctx *Context, first bool) error {
	if first {
		d.cloned = ctx.Seq.CloneFilters(d.source)
		d.old = d.clip.Filters
	}
	ctx.Seq.DetachAllFilters(d.clip)
	d.clip.Filters = d.cloned
	ctx.Seq.AttachAllFilters(d.clip)
	return nil
}

func (d *cloneFiltersData) undo(ctx *Context) error {
	ctx.Seq.DetachAllFilters(d.clip)
	d.clip.Filters = d.old
	ctx.Seq.AttachAllFilters(d.clip)
	return nil
}

// --- mute / unmute ---

// doClipMute attaches a zero-gain filter outside the clip's regular
// filter list.
func doClipMute(ctx *Context, clip *timeline.Clip, muteFilter *timeline.Filter) {
	ctx.Seq.AttachFilter(clip, muteFilter)
	clip.MuteFilter = muteFilter
}

func doClipUnmute(ctx *Context, clip *timeline.Clip) error {
	if clip.MuteFilter == nil {
		return fmt.Errorf("unmute: clip %s is not muted", clip.ID)
	}
	ctx.Seq.DetachFilter(clip, clip.MuteFilter)
	clip.MuteFilter = nil
	return nil
}

type muteClipData struct {
	clip *timeline.Clip
}

// NewMuteClip silences a clip by attaching a zero-gain volume filter.
func NewMuteClip(clip *timeline.Clip) *Action {
	d := &muteClipData{clip: clip}
	return newAction("mute clip", d.redo, d.undo)
}

func (d *muteClipData) redo(ctx *Context, first bool) error {
	doClipMute(ctx, d.clip, ctx.Seq.CreateMuteFilter())
	return nil
}

func (d *muteClipData) undo(ctx *Context) error {
	return doClipUnmute(ctx, d.clip)
}

type unmuteClipData struct {
	clip *timeline.Clip
}

// NewUnmuteClip removes a clip's mute filter. Undo recreates an
// equivalent mute filter rather than reusing a stale one.
func NewUnmuteClip(clip *timeline.Clip) *Action {
	d := &unmuteClipData{clip: clip}
	return newAction("unmute clip", d.redo, d.undo)
}

func (d *unmuteClipData) redo(ctx *Context, first bool) error {
	return doClipUnmute(ctx, d.clip)
}

func (d *unmuteClipData) undo(ctx *Context) error {
	doClipMute(ctx, d.clip, ctx.Seq.CreateMuteFilter())
	return nil
}
