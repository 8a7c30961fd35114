package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kreyollingua/pale/internal/cli"
	"github.com/kreyollingua/pale/internal/models"
	"github.com/kreyollingua/pale/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-voices flag
	if flags.ListVoices {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableVoices()
	}

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	// Favorites management runs without a phrase argument
	if flags.RemoveFavorite != "" {
		return proc.RemoveFavorite(flags.RemoveFavorite)
	}
	if flags.ExportCSV != "" {
		return proc.ExportFavorites(flags.ExportCSV)
	}
	if flags.ShowFavorites {
		return proc.ShowFavorites()
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch()
	}

	if len(args) > 0 {
		return proc.ProcessSinglePhrase(args[0])
	}

	// No input provided
	return cmd.Help()
}
