package project

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// ErrInvalidProject is returned when project data fails validation.
var ErrInvalidProject = errors.New("invalid project data")

// Load parses a project document and rebuilds its sequence on the given
// engine. Clips are rebuilt through the same append and insert paths
// the editor uses, so the engine mirror stays consistent.
func Load(data []byte, engine timeline.Engine) (*Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidProject)
	}
	doc := gjson.ParseBytes(data)

	seq := timeline.NewSequence(engine)
	p := &Project{
		Name: doc.Get("name").String(),
		FPS:  doc.Get("fps").Float(),
		Seq:  seq,
	}
	if p.FPS <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidProject, p.FPS)
	}

	var loadErr error
	doc.Get("tracks").ForEach(func(_, trackDoc gjson.Result) bool {
		typ := timeline.TrackVideo
		if trackDoc.Get("type").String() == "audio" {
			typ = timeline.TrackAudio
		}
		track := seq.AddTrack(typ)

		trackDoc.Get("clips").ForEach(func(_, clipDoc gjson.Result) bool {
			loadErr = loadClip(seq, track, clipDoc)
			return loadErr == nil
		})
		return loadErr == nil
	})
	if loadErr != nil {
		return nil, loadErr
	}

	doc.Get("compositors").ForEach(func(_, compDoc gjson.Result) bool {
		c := seq.CreateCompositor(compDoc.Get("kind").String())
		c.SetInAndOut(int(compDoc.Get("in").Int()), int(compDoc.Get("out").Int()))
		c.SetTracks(int(compDoc.Get("aTrack").Int()), int(compDoc.Get("bTrack").Int()))
		compDoc.Get("props").ForEach(func(key, val gjson.Result) bool {
			c.Props[key.String()] = val.String()
			return true
		})
		seq.AddCompositor(c)
		return true
	})
	seq.RestackCompositors()

	if err := seq.CheckConsistency(); err != nil {
		return nil, err
	}
	return p, nil
}

func loadClip(seq *timeline.Sequence, track *timeline.Track, clipDoc gjson.Result) error {
	in := int(clipDoc.Get("clipIn").Int())
	out := int(clipDoc.Get("clipOut").Int())

	if clipDoc.Get("blank").Bool() {
		length := out - in + 1
		if length < 1 {
			return fmt.Errorf("%w: blank with length %d", ErrInvalidProject, length)
		}
		_, err := seq.InsertBlank(track, track.Len(), length)
		return err
	}

	clip := seq.NewClip(clipDoc.Get("path").String(), clipDoc.Get("name").String())
	if err := seq.AppendClip(track, clip, in, out); err != nil {
		return err
	}

	clipDoc.Get("filters").ForEach(func(_, filterDoc gjson.Result) bool {
		f := seq.CreateFilter(timeline.FilterInfo{Name: filterDoc.Get("name").String()})
		filterDoc.Get("props").ForEach(func(key, val gjson.Result) bool {
			f.Set(key.String(), val.String())
			return true
		})
		seq.AttachFilter(clip, f)
		clip.Filters = append(clip.Filters, f)
		return true
	})
	return nil
}

// Dump serializes the project to JSON.
func Dump(p *Project) ([]byte, error) {
	data := []byte("{}")
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, path, value)
	}

	set("name", p.Name)
	set("fps", p.FPS)
	set("tracks", []any{})

	for ti, track := range p.Seq.Tracks {
		typ := "video"
		if track.Type == timeline.TrackAudio {
			typ = "audio"
		}
		set(fmt.Sprintf("tracks.%d.type", ti), typ)
		set(fmt.Sprintf("tracks.%d.clips", ti), []any{})

		for ci, clip := range track.Clips() {
			base := fmt.Sprintf("tracks.%d.clips.%d", ti, ci)
			if clip.IsBlank() {
				set(base+".blank", true)
				set(base+".clipIn", clip.ClipIn)
				set(base+".clipOut", clip.ClipOut)
				continue
			}
			set(base+".name", clip.Name)
			set(base+".path", clip.Path)
			set(base+".clipIn", clip.ClipIn)
			set(base+".clipOut", clip.ClipOut)
			for fi, f := range clip.Filters {
				fbase := fmt.Sprintf("%s.filters.%d", base, fi)
				set(fbase+".name", f.Info.Name)
				for key, val := range f.Props {
					set(fmt.Sprintf("%s.props.%s", fbase, key), val)
				}
			}
		}
	}

	for i, c := range p.Seq.Compositors() {
		base := fmt.Sprintf("compositors.%d", i)
		set(base+".kind", c.Kind)
		set(base+".in", c.In)
		set(base+".out", c.Out)
		set(base+".aTrack", c.ATrack)
		set(base+".bTrack", c.BTrack)
		for key, val := range c.Props {
			set(fmt.Sprintf("%s.props.%s", base, key), val)
		}
	}

	if err != nil {
		return nil, err
	}
	return data, nil
}
