package project

import (
	"github.com/ptrg/flowblade/internal/engine/timeline"
)

// Project bundles a sequence with its descriptive metadata.
type Project struct {
	Name string
	FPS  float64

	Seq *timeline.Sequence
}

// New creates an empty project around seq.
func New(name string, fps float64, seq *timeline.Sequence) *Project {
	return &Project{
		Name: name,
		FPS:  fps,
		Seq:  seq,
	}
}
