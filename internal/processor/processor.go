package processor

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kreyollingua/pale/internal/analysis"
	"github.com/kreyollingua/pale/internal/batch"
	"github.com/kreyollingua/pale/internal/cli"
	"github.com/kreyollingua/pale/internal/favorites"
	"github.com/kreyollingua/pale/internal/phonetic"
	"github.com/kreyollingua/pale/internal/session"
	"github.com/kreyollingua/pale/internal/speech"
	"github.com/kreyollingua/pale/internal/storage"
	"github.com/kreyollingua/pale/internal/token"
)

var openAIVoices = []string{"alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"}

// Processor handles the main phrase processing logic
type Processor struct {
	flags  *cli.Flags
	client *analysis.Client
	rules  *phonetic.RuleSet

	kv    storage.KV
	saved *favorites.Store
}

// NewProcessor creates a new phrase processor
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	// Use config file value if the flag still carries its default
	serviceURL := flags.ServiceURL
	if flags.ServiceURL == "http://localhost:8000" && viper.IsSet("service.url") {
		serviceURL = viper.GetString("service.url")
	}

	rules, err := loadRules(flags)
	if err != nil {
		return nil, err
	}

	return &Processor{
		flags:  flags,
		client: analysis.NewClient(serviceURL),
		rules:  rules,
	}, nil
}

func loadRules(flags *cli.Flags) (*phonetic.RuleSet, error) {
	rulesFile := flags.RulesFile
	if rulesFile == "" && viper.IsSet("phonetic.rules") {
		rulesFile = viper.GetString("phonetic.rules")
	}
	if rulesFile == "" {
		return phonetic.DefaultRules(), nil
	}

	rules, err := phonetic.LoadFile(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load phonetic rules: %w", err)
	}
	return rules, nil
}

// Close releases the favorites database if it was opened
func (p *Processor) Close() error {
	if p.kv != nil {
		return p.kv.Close()
	}
	return nil
}

// ProcessSinglePhrase analyzes a single phrase from the command line
func (p *Processor) ProcessSinglePhrase(phrase string) error {
	sess, err := p.newSession()
	if err != nil {
		return err
	}

	ctx := context.Background()

	result, err := sess.Analyze(ctx, phrase)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("empty phrase")
	}

	fmt.Print(session.FormatResult(result))

	if p.flags.Phonetic {
		fmt.Printf("\nPronunciation: %s\n", phonetic.Rewrite(result.NormalizedText, p.rules))
	}

	if p.flags.SaveFavorite {
		if err := sess.SaveFavorite(); err != nil {
			return err
		}
		fmt.Printf("\nSaved to favorites: %s\n", result.NormalizedText)
	}

	if p.flags.Speak {
		utterance, err := sess.Speak(ctx)
		if err != nil {
			return err
		}
		if utterance != nil {
			if err := utterance.Wait(); err != nil {
				return fmt.Errorf("speech failed: %w", err)
			}
			fmt.Printf("\nAudio saved to: %s\n", utterance.File)
		}
	}

	return nil
}

// ProcessBatch analyzes multiple phrases from a batch file
func (p *Processor) ProcessBatch() error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Check the service is reachable before working through the file
	engine, err := p.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("analysis service not reachable: %w", err)
	}
	fmt.Printf("Connected to %s\n", engine)

	// Track statistics
	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Phrase)
		if entry.Gloss != "" {
			fmt.Printf("  Gloss: %s\n", entry.Gloss)
		}

		result, err := p.client.Analyze(ctx, token.PrepareInput(entry.Phrase))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing '%s': %v\n", entry.Phrase, err)
			errorCount++
			// Continue with next phrase
			continue
		}

		fmt.Print(indent(session.FormatResult(result), "  "))
		if p.flags.Phonetic {
			fmt.Printf("  Pronunciation: %s\n", phonetic.Rewrite(result.NormalizedText, p.rules))
		}
		processedCount++
	}

	// Print summary
	fmt.Printf("\n=== Batch Processing Summary ===\n")
	fmt.Printf("Total phrases: %d\n", len(entries))
	fmt.Printf("Processed: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("================================\n")

	return nil
}

// ShowFavorites prints the saved phrases, newest first
func (p *Processor) ShowFavorites() error {
	saved, err := p.favoritesStore()
	if err != nil {
		return err
	}

	items := saved.Items()
	if len(items) == 0 {
		fmt.Println("No favorites saved yet.")
		return nil
	}

	fmt.Printf("Favorites (%d):\n", len(items))
	for i, item := range items {
		fmt.Printf("%3d. %s\n", i+1, item)
	}
	return nil
}

// RemoveFavorite deletes a phrase from the favorites list
func (p *Processor) RemoveFavorite(phrase string) error {
	saved, err := p.favoritesStore()
	if err != nil {
		return err
	}

	if !saved.Contains(phrase) {
		return fmt.Errorf("not in favorites: %s", phrase)
	}
	if err := saved.Remove(phrase); err != nil {
		return err
	}
	fmt.Printf("Removed from favorites: %s\n", phrase)
	return nil
}

// ExportFavorites writes the favorites list to a CSV file
func (p *Processor) ExportFavorites(outputPath string) error {
	saved, err := p.favoritesStore()
	if err != nil {
		return err
	}

	if err := saved.ExportCSV(outputPath, true); err != nil {
		return fmt.Errorf("failed to export favorites: %w", err)
	}
	fmt.Printf("Exported %d favorites to: %s\n", saved.Len(), outputPath)
	return nil
}

// newSession wires up a session with the pieces the current flags need
func (p *Processor) newSession() (*session.Session, error) {
	var speaker *speech.Speaker
	if p.flags.Speak {
		var err error
		speaker, err = p.buildSpeaker()
		if err != nil {
			return nil, err
		}
	}

	var saved *favorites.Store
	if p.flags.SaveFavorite {
		var err error
		saved, err = p.favoritesStore()
		if err != nil {
			return nil, err
		}
	}

	notify := func(message string) {
		fmt.Fprintln(os.Stderr, message)
	}

	return session.New(p.client, p.rules, speaker, saved, notify), nil
}

// favoritesStore opens the favorites database on first use
func (p *Processor) favoritesStore() (*favorites.Store, error) {
	if p.saved != nil {
		return p.saved, nil
	}

	// The flag is bound to viper, so this resolves flag, then config
	// file, then the flag default
	dbPath := viper.GetString("favorites.database")
	if dbPath == "" {
		dbPath = p.flags.FavoritesDB
	}

	kv, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites database: %w", err)
	}
	p.kv = kv
	p.saved = favorites.Load(kv)
	return p.saved, nil
}

// buildSpeaker assembles the speech provider chain from flags and config
func (p *Processor) buildSpeaker() (*speech.Speaker, error) {
	options := speech.DefaultOptions()
	options.Rate = p.flags.OpenAISpeed

	config := &speech.Config{
		Provider:     p.flags.Provider,
		OutputDir:    p.flags.OutputDir,
		OutputFormat: p.flags.AudioFormat,
		Options:      options,

		OpenAIKey:         cli.GetOpenAIKey(),
		OpenAIModel:       p.flags.OpenAIModel,
		OpenAIVoice:       p.flags.OpenAIVoice,
		OpenAIInstruction: p.flags.OpenAIInstruction,

		EnableCache: viper.GetBool("speech.enable_cache"),
		CacheDir:    viper.GetString("speech.cache_dir"),
	}
	if config.CacheDir == "" {
		config.CacheDir = "./.audio_cache"
	}

	// Use config file values if not overridden by flags
	if p.flags.OpenAIModel == "gpt-4o-mini-tts" && viper.IsSet("speech.openai_model") {
		config.OpenAIModel = viper.GetString("speech.openai_model")
	}
	if p.flags.OpenAIInstruction == "" && viper.IsSet("speech.openai_instruction") {
		config.OpenAIInstruction = viper.GetString("speech.openai_instruction")
	}
	if config.OpenAIInstruction == "" {
		config.OpenAIInstruction = speech.DefaultProviderConfig().OpenAIInstruction
	}

	if config.Provider == "openai" && config.OpenAIVoice == "" {
		voice := openAIVoices[rand.Intn(len(openAIVoices))]
		config.OpenAIVoice = voice
		fmt.Printf("Using random voice: %s\n", voice)
	}

	var provider speech.Provider
	switch {
	case config.Provider == "espeak":
		espeak, err := speech.NewESpeakProvider(p.espeakConfig(options))
		if err != nil {
			return nil, err
		}
		provider = espeak

	case config.OpenAIKey == "":
		// No API key; fall straight through to espeak
		fmt.Fprintln(os.Stderr, "No OpenAI API key configured, using espeak-ng")
		espeak, err := speech.NewESpeakProvider(p.espeakConfig(options))
		if err != nil {
			return nil, err
		}
		provider = espeak

	default:
		primary, err := speech.NewProvider(config)
		if err != nil {
			return nil, err
		}
		provider = primary
		if espeak, err := speech.NewESpeakProvider(p.espeakConfig(options)); err == nil {
			provider = speech.NewProviderWithFallback(primary, espeak)
		}
	}

	if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return speech.NewSpeaker(provider, p.flags.OutputDir, p.flags.AudioFormat), nil
}

// espeakConfig maps synthesis options onto espeak-ng, letting the
// espeak flags override the generic ones
func (p *Processor) espeakConfig(options speech.Options) *speech.ESpeakConfig {
	config := speech.ESpeakConfigFromOptions(options)
	if p.flags.ESpeakVoice != "" {
		config.Voice = p.flags.ESpeakVoice
	}
	if p.flags.ESpeakSpeed > 0 {
		config.Speed = p.flags.ESpeakSpeed
	}
	return config
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
