package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptrg/flowblade/internal/engine/mlt"
	"github.com/ptrg/flowblade/internal/engine/timeline"
	"github.com/ptrg/flowblade/internal/project"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project.json>",
	Short: "Print a project's timeline structure",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	p, err := project.Load(data, mlt.NewEngine())
	if err != nil {
		return fmt.Errorf("loading project %s: %w", args[0], err)
	}

	fmt.Printf("Project: %s (%.3g fps)\n", p.Name, p.FPS)

	for _, track := range p.Seq.Tracks {
		typ := "video"
		if track.Type == timeline.TrackAudio {
			typ = "audio"
		}
		fmt.Printf("Track %d (%s): %d clips, %d frames\n", track.ID, typ, track.Len(), track.Length())

		pos := 0
		for i := 0; i < track.Len(); i++ {
			clip := track.Clip(i)
			if clip.IsBlank() {
				fmt.Printf("  %3d  [%6d..%6d]  blank (%d frames)\n", i, pos, pos+clip.Length()-1, clip.Length())
			} else {
				fmt.Printf("  %3d  [%6d..%6d]  %s (%d-%d)\n", i, pos, pos+clip.Length()-1, clip.Name, clip.ClipIn, clip.ClipOut)
			}
			pos += clip.Length()
		}
	}

	for _, c := range p.Seq.Compositors() {
		fmt.Printf("Compositor %s: tracks %d>%d, frames %d-%d\n", c.Kind, c.BTrack, c.ATrack, c.In, c.Out)
	}
	return nil
}
