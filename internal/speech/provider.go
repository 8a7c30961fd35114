package speech

import (
	"context"
	"fmt"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio synthesizes text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Options are the synthesis parameters passed along with each phrase.
// No synthesizer we target speaks Haitian Creole natively, so phrases are
// phonetically rewritten first and spoken through a French voice.
type Options struct {
	Language string  // BCP 47 language the voice should assume (default "fr")
	Pitch    float64 // 0.5 to 2.0, 1.0 is neutral
	Rate     float64 // 0.25 to 4.0, 1.0 is normal speed
}

// DefaultOptions returns the synthesis defaults for Creole phrases
func DefaultOptions() Options {
	return Options{
		Language: "fr",
		Pitch:    1.0,
		Rate:     0.9, // slightly slow for learners
	}
}

// Config holds common configuration for speech providers
type Config struct {
	Provider     string // Provider name: "openai" or "espeak"
	OutputDir    string // Directory for output files
	OutputFormat string // Output format: "mp3" or "wav"
	Options      Options

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string // "alloy", "ash", "coral", "echo", "nova", "onyx", "shimmer", ...
	OpenAIInstruction string // Voice instructions for gpt-4o-mini-tts model

	// Audio cache settings
	CacheDir    string
	EnableCache bool
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:     "openai",
		OutputDir:    "./",
		OutputFormat: "mp3",
		Options:      DefaultOptions(),
		OpenAIModel:  "gpt-4o-mini-tts",
		OpenAIVoice:  "alloy",
		OpenAIInstruction: "The text is Haitian Creole rendered in approximate phonetic spelling. " +
			"Read it with French phonetics, slowly and clearly for language learners.",
	}
}

// NewProvider creates the appropriate speech provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "espeak":
		return NewESpeakProvider(ESpeakConfigFromOptions(config.Options))

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err != nil {
		fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
			p.primary.Name(), err, p.fallback.Name())

		return p.fallback.GenerateAudio(ctx, text, outputFile)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
