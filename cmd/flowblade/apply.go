package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptrg/flowblade/internal/config"
	"github.com/ptrg/flowblade/internal/engine/edit"
	"github.com/ptrg/flowblade/internal/engine/history"
	"github.com/ptrg/flowblade/internal/engine/mlt"
	"github.com/ptrg/flowblade/internal/engine/resync"
	"github.com/ptrg/flowblade/internal/project"
)

var (
	applyOutput    string
	applyUndoSteps int
)

var applyCmd = &cobra.Command{
	Use:   "apply <project.json> <script.yaml>",
	Short: "Apply an edit script to a project",
	Long: `Apply runs every step of a YAML edit script against a project and
writes the edited project back out. A failing step aborts the run;
steps before it stay applied.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "Output file (default: overwrite input)")
	applyCmd.Flags().IntVar(&applyUndoSteps, "undo-steps", 0, "Undo the last N steps before writing")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	outPath := applyOutput
	if outPath == "" {
		outPath = args[0]
	}
	steps, err := applyScript(args[0], args[1], outPath, applyUndoSteps, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d steps to %s\n", steps, outPath)
	return nil
}

// applyScript loads a project, runs a script against it, optionally
// undoes the last undoSteps edits and writes the result to outPath. It
// returns the number of steps applied.
func applyScript(projectPath, scriptPath, outPath string, undoSteps int, cfg *config.Config) (int, error) {
	projectData, err := os.ReadFile(projectPath)
	if err != nil {
		return 0, err
	}
	p, err := project.Load(projectData, mlt.NewEngine())
	if err != nil {
		return 0, fmt.Errorf("loading project %s: %w", projectPath, err)
	}

	scriptData, err := os.ReadFile(scriptPath)
	if err != nil {
		return 0, err
	}
	script, err := project.ParseScript(scriptData)
	if err != nil {
		return 0, fmt.Errorf("loading script %s: %w", scriptPath, err)
	}

	registry := resync.NewRegistry(p.Seq)
	ctx := &edit.Context{
		Seq:    p.Seq,
		Resync: registry,
	}
	stack := history.NewStack(cfg.Editor.UndoDepth)

	runner := project.NewRunner(p, stack, ctx)
	if err := runner.Run(script); err != nil {
		return 0, fmt.Errorf("applying script: %w", err)
	}
	for i := 0; i < undoSteps; i++ {
		if err := stack.Undo(ctx); err != nil {
			return 0, fmt.Errorf("undoing step %d: %w", i, err)
		}
	}

	out, err := project.Dump(p)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return 0, err
	}
	return len(script.Steps), nil
}
