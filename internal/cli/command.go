package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kreyollingua/pale/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pale [phrase]",
		Short: "Haitian Creole Phrase Companion",
		Long: `pale analyzes Haitian Creole phrases through the Kreyòl Lingua service.

It normalizes spelling, shows per-word definitions and parts of speech,
produces phonetic pronunciation guides, and can speak phrases aloud
using OpenAI TTS or espeak-ng.

Examples:
  pale "Mwen ap manje"              # Analyze a phrase
  pale --speak "Bonjou"             # Analyze and pronounce it
  pale --batch phrases.txt          # Process multiple phrases from file
  pale --favorites                  # Show saved phrases`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultOutputDir := filepath.Join(home, ".local", "state", "pale", "audio")
	defaultFavoritesDB := filepath.Join(home, ".local", "state", "pale", "favorites.db")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.pale.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", defaultOutputDir, "Output directory for audio files")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (wav or mp3)")
	cmd.Flags().StringVar(&flags.ServiceURL, "service-url", flags.ServiceURL, "Base URL of the Kreyòl Lingua analysis service")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process phrases from file (one per line, optional '= gloss')")
	cmd.Flags().StringVar(&flags.RulesFile, "rules", "", "Phonetic rule table (YAML, default is the built-in table)")
	cmd.Flags().StringVar(&flags.FavoritesDB, "favorites-db", defaultFavoritesDB, "Favorites database file")
	cmd.Flags().BoolVarP(&flags.Speak, "speak", "s", false, "Speak the analyzed phrase aloud")
	cmd.Flags().BoolVar(&flags.SaveFavorite, "save", false, "Save the analyzed phrase to favorites")
	cmd.Flags().BoolVar(&flags.ShowFavorites, "favorites", false, "List saved favorite phrases")
	cmd.Flags().StringVar(&flags.RemoveFavorite, "remove-favorite", "", "Remove a phrase from favorites")
	cmd.Flags().StringVar(&flags.ExportCSV, "export-csv", "", "Export favorites to a CSV file")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List available speech voices for the current API key")
	cmd.Flags().BoolVarP(&flags.Phonetic, "phonetic", "p", false, "Show the phonetic pronunciation guide")

	// Speech provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Speech provider: openai or espeak")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse (default: random)")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model (e.g., 'speak slowly with a Haitian accent')")

	// eSpeak flags
	cmd.Flags().StringVar(&flags.ESpeakVoice, "espeak-voice", flags.ESpeakVoice, "espeak-ng voice (fr variants approximate Creole phonetics)")
	cmd.Flags().IntVar(&flags.ESpeakSpeed, "espeak-speed", flags.ESpeakSpeed, "espeak-ng speed in words per minute")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("service.url", cmd.Flags().Lookup("service-url"))
	viper.BindPFlag("speech.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("speech.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("speech.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("speech.espeak_voice", cmd.Flags().Lookup("espeak-voice"))
	viper.BindPFlag("speech.espeak_speed", cmd.Flags().Lookup("espeak-speed"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("favorites.database", cmd.Flags().Lookup("favorites-db"))
	viper.BindPFlag("phonetic.rules", cmd.Flags().Lookup("rules"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".pale" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pale")
	}

	// Environment variables
	viper.SetEnvPrefix("PALE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("speech.openai_key")
}
