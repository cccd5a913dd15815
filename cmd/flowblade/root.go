package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "flowblade",
	Short: "Non-linear timeline edit engine",
	Long: `Flowblade applies edit operations to video timeline projects.
Projects are JSON documents describing tracks, clips and compositors;
edits arrive as YAML scripts of catalog operations, each one undoable.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Configuration file")
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watchCmd)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "flowblade.toml"
	}
	return home + "/.config/flowblade/flowblade.toml"
}
