package project

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ptrg/flowblade/internal/engine/edit"
	"github.com/ptrg/flowblade/internal/engine/history"
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// ErrInvalidScript is returned when a script fails validation.
var ErrInvalidScript = errors.New("invalid edit script")

// Script is a sequence of edit steps applied to a project in order.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step describes one edit operation. Which fields matter depends on Op;
// unused fields are ignored.
type Step struct {
	Op string `yaml:"op"`

	Track   int `yaml:"track"`
	ToTrack int `yaml:"toTrack"`
	Index   int `yaml:"index"`

	Name string `yaml:"name"`
	Path string `yaml:"path"`

	In    int `yaml:"in"`
	Out   int `yaml:"out"`
	Frame int `yaml:"frame"`
	From  int `yaml:"from"`
	To    int `yaml:"to"`
	Delta int `yaml:"delta"`
}

// ParseScript decodes a YAML edit script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, step := range s.Steps {
		if step.Op == "" {
			return nil, fmt.Errorf("%w: step %d has no op", ErrInvalidScript, i)
		}
	}
	return &s, nil
}

// Runner applies scripts to a project, keeping every step undoable.
type Runner struct {
	project *Project
	history *history.Stack
	ctx     *edit.Context
}

// NewRunner creates a runner for p. Executed steps are pushed onto st.
func NewRunner(p *Project, st *history.Stack, ctx *edit.Context) *Runner {
	return &Runner{project: p, history: st, ctx: ctx}
}

// Run executes every step of the script. Execution stops at the first
// failing step; earlier steps stay applied and undoable.
func (r *Runner) Run(s *Script) error {
	for i, step := range s.Steps {
		if err := r.runStep(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}
	return nil
}

func (r *Runner) runStep(step Step) error {
	switch step.Op {
	case "undo":
		return r.history.Undo(r.ctx)
	case "redo":
		return r.history.Redo(r.ctx)
	}

	a, err := r.buildAction(step)
	if err != nil {
		return err
	}
	return r.history.Execute(a, r.ctx)
}

// buildAction translates a step into an edit action.
func (r *Runner) buildAction(step Step) (*edit.Action, error) {
	seq := r.project.Seq

	switch step.Op {
	case "append":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip := seq.NewClip(step.Path, step.Name)
		return edit.NewAppend(track, clip, step.In, step.Out), nil

	case "insert":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip := seq.NewClip(step.Path, step.Name)
		return edit.NewInsert(track, clip, step.Index, step.In, step.Out), nil

	case "cut":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip, err := r.clip(track, step.Index)
		if err != nil {
			return nil, err
		}
		return edit.NewCut(track, clip, step.Index, step.Frame), nil

	case "remove":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		return edit.NewRemoveMultiple(track, step.From, step.To), nil

	case "lift":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		return edit.NewLiftMultiple(track, step.From, step.To), nil

	case "overwrite":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip := seq.NewClip(step.Path, step.Name)
		return edit.NewThreePointOverwrite(track, clip, step.In, step.Out, step.From, step.To), nil

	case "insertMove":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		return edit.NewInsertMove(track, step.Index, step.From, step.To, nil), nil

	case "overwriteMove":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		return edit.NewOverwriteMove(track, step.In, step.Out, step.From, step.To, nil), nil

	case "trimStart":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip, err := r.clip(track, step.Index)
		if err != nil {
			return nil, err
		}
		return edit.NewTrimStart(track, clip, step.Index, step.Delta, nil), nil

	case "trimEnd":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip, err := r.clip(track, step.Index)
		if err != nil {
			return nil, err
		}
		return edit.NewTrimEnd(track, clip, step.Index, step.Delta, nil), nil

	case "consolidateBlanks":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		return edit.NewConsolidateBlanks(track, step.Index), nil

	case "consolidateAllBlanks":
		return edit.NewConsolidateAllBlanks(), nil

	case "mute":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip, err := r.clip(track, step.Index)
		if err != nil {
			return nil, err
		}
		return edit.NewMuteClip(clip), nil

	case "unmute":
		track, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		clip, err := r.clip(track, step.Index)
		if err != nil {
			return nil, err
		}
		return edit.NewUnmuteClip(clip), nil

	case "setSync":
		childTrack, err := r.track(step.Track)
		if err != nil {
			return nil, err
		}
		parentTrack, err := r.track(step.ToTrack)
		if err != nil {
			return nil, err
		}
		return edit.NewSetSync(childTrack, step.Index, parentTrack, step.From), nil

	case "resyncAll":
		return edit.NewResyncAll(), nil

	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidScript, step.Op)
	}
}

func (r *Runner) track(id int) (*timeline.Track, error) {
	tracks := r.project.Seq.Tracks
	if id < 0 || id >= len(tracks) {
		return nil, fmt.Errorf("%w: track %d out of range [0,%d)", ErrInvalidScript, id, len(tracks))
	}
	return tracks[id], nil
}

func (r *Runner) clip(track *timeline.Track, index int) (*timeline.Clip, error) {
	if index < 0 || index >= track.Len() {
		return nil, fmt.Errorf("%w: clip %d out of range [0,%d) on track %d", ErrInvalidScript, index, track.Len(), track.ID)
	}
	return track.Clip(index), nil
}
