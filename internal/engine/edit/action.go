package edit

import (
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// RunState tracks where an action is in its lifecycle. The forward
// function is shared between the first run and every redo, so it asks
// explicitly whether this is the first run instead of probing for
// derived fields; several actions create clones or filter objects on
// the first run only.
type RunState int

const (
	// StateCreated means the action has been constructed but never run.
	StateCreated RunState = iota
	// StateFirstRun means the forward function has run exactly once.
	StateFirstRun
	// StateReplayed means the action has been undone or redone at least
	// once after its first run.
	StateReplayed
)

// Player controls timeline playback. Playback must be halted before any
// action runs because the engine must not read segment state
// mid-mutation.
type Player interface {
	StopPlayback()
}

// Selection clears the active segment selection; selections are not
// guaranteed valid after a structural change.
type Selection interface {
	Clear()
}

// GUI receives refresh requests after an action runs. Suppressed during
// batch operations via Context.SuppressGUI.
type GUI interface {
	TimelineChanged()

	// ClipRemovedFromEditors tells open editors to drop a clip whose
	// filters were cleared.
	ClipRemovedFromEditors(c *timeline.Clip)
}

// WaveformCache evicts cached waveform renderings keyed by clip and
// track; moves across tracks invalidate them.
type WaveformCache interface {
	Evict(clips []*timeline.Clip, t *timeline.Track)
}

// ResyncSource supplies the positions sync children should move to.
// The resync package provides the real implementation.
type ResyncSource interface {
	DataList() []timeline.ResyncData
	DataListForClips(clips []*timeline.Clip) []timeline.ResyncData
}

// Context carries the collaborators one action execution needs. It
// replaces process-wide state: GUI suppression is a field here, set by
// batch operations for their inner replays.
type Context struct {
	Seq *timeline.Sequence

	Player    Player
	Selection Selection
	GUI       GUI
	Waveforms WaveformCache
	Resync    ResyncSource

	// SuppressGUI disables the GUI refresh side effect, used for bulk
	// operations such as full resynchronization.
	SuppressGUI bool
}

// Action is one reversible edit: a forward operation, a backward
// operation and whatever state the pair captured. Constructed by the
// catalog functions in this package, run once with Do, then pushed on
// the history stack for undo/redo.
type Action struct {
	desc  string
	state RunState

	// forward runs for both the first do and every redo; first tells it
	// which. backward exactly reverses the most recent forward run.
	forward  func(ctx *Context, first bool) error
	backward func(ctx *Context) error
}

func newAction(desc string, forward func(*Context, bool) error, backward func(*Context) error) *Action {
	return &Action{
		desc:     desc,
		forward:  forward,
		backward: backward,
	}
}

// Description returns a short human-readable name for the edit.
func (a *Action) Description() string {
	return a.desc
}

// State returns the action's run state.
func (a *Action) State() RunState {
	return a.state
}

// Do performs the action's first forward run. The caller pushes the
// action onto the history stack afterwards.
func (a *Action) Do(ctx *Context) error {
	return a.Redo(ctx)
}

// Redo runs the forward operation with the full action discipline:
// playback is stopped and the selection cleared first, sync states are
// recomputed after, and the GUI is refreshed unless suppressed.
func (a *Action) Redo(ctx *Context) error {
	prepare(ctx)
	if err := a.runForward(ctx); err != nil {
		return err
	}
	finish(ctx)
	return nil
}

// Undo runs the backward operation with the full action discipline.
func (a *Action) Undo(ctx *Context) error {
	prepare(ctx)
	if err := a.runBackward(ctx); err != nil {
		return err
	}
	finish(ctx)
	return nil
}

// runForward invokes the forward function and advances the run state.
// Batch actions use it directly for their inner replays, skipping the
// per-action playback/selection/GUI handling.
func (a *Action) runForward(ctx *Context) error {
	first := a.state == StateCreated
	if err := a.forward(ctx, first); err != nil {
		return err
	}
	if first {
		a.state = StateFirstRun
	} else {
		a.state = StateReplayed
	}
	return nil
}

// runBackward invokes the backward function and marks the action
// replayed.
func (a *Action) runBackward(ctx *Context) error {
	if err := a.backward(ctx); err != nil {
		return err
	}
	a.state = StateReplayed
	return nil
}

func prepare(ctx *Context) {
	if ctx.Player != nil {
		ctx.Player.StopPlayback()
	}
	if ctx.Selection != nil {
		ctx.Selection.Clear()
	}
}

func finish(ctx *Context) {
	ctx.Seq.Sync().RecalculateStates()
	if !ctx.SuppressGUI && ctx.GUI != nil {
		ctx.GUI.TimelineChanged()
	}
}
