package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ptrg/flowblade/internal/config"
	"github.com/ptrg/flowblade/internal/config/watcher"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch <project.json> <script.yaml>",
	Short: "Re-apply an edit script whenever it changes",
	Long: `Watch applies the script once, then re-applies it from scratch each
time the script file is saved. The source project is re-read on every
run, so the output always reflects the current script against the
original project.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file (required)")
	watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	projectPath, scriptPath := args[0], args[1]

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	run := func() {
		steps, err := applyScript(projectPath, scriptPath, watchOutput, 0, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Applied %d steps to %s\n", steps, watchOutput)
	}
	run()

	w, err := watcher.New(scriptPath, 0, func(string) { run() })
	if err != nil {
		return fmt.Errorf("watching %s: %w", scriptPath, err)
	}
	defer w.Close()

	fmt.Printf("Watching %s, press Ctrl-C to stop\n", scriptPath)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
