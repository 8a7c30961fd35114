package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeProvider records calls and returns a scripted error
type fakeProvider struct {
	name  string
	err   error
	block chan struct{} // when set, GenerateAudio waits for ctx or release

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.block:
		}
	}
	return f.err
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) IsAvailable() error { return f.err }

func TestNewProvider_OpenAI(t *testing.T) {
	config := DefaultProviderConfig()
	config.OpenAIKey = "test-key"

	provider, err := NewProvider(config)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	if provider.Name() != "openai" {
		t.Errorf("Expected provider 'openai', got '%s'", provider.Name())
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	config := DefaultProviderConfig()
	config.OpenAIKey = ""

	if _, err := NewProvider(config); err == nil {
		t.Error("Expected error for missing OpenAI key")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	config := DefaultProviderConfig()
	config.Provider = "bogus"

	if _, err := NewProvider(config); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Language != "fr" {
		t.Errorf("Expected French voice language, got '%s'", opts.Language)
	}

	if opts.Rate <= 0 || opts.Rate > 1.0 {
		t.Errorf("Expected learner-friendly rate in (0, 1.0], got %f", opts.Rate)
	}
}

func TestProviderWithFallback(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("primary down")}
	fallback := &fakeProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	err := provider.GenerateAudio(context.Background(), "bon-joo", "out.mp3")
	if err != nil {
		t.Errorf("Expected fallback to succeed, got %v", err)
	}

	if len(primary.calls) != 1 || len(fallback.calls) != 1 {
		t.Errorf("Expected both providers called once, got primary=%d fallback=%d",
			len(primary.calls), len(fallback.calls))
	}
}

func TestProviderWithFallback_PrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{name: "primary"}
	fallback := &fakeProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	if err := provider.GenerateAudio(context.Background(), "bon-joo", "out.mp3"); err != nil {
		t.Errorf("GenerateAudio failed: %v", err)
	}

	if len(fallback.calls) != 0 {
		t.Error("Fallback should not be called when primary succeeds")
	}
}

func TestProviderWithFallback_IsAvailable(t *testing.T) {
	down := &fakeProvider{name: "down", err: errors.New("unavailable")}
	up := &fakeProvider{name: "up"}

	if err := NewProviderWithFallback(down, up).IsAvailable(); err != nil {
		t.Errorf("Expected available when fallback is up, got %v", err)
	}

	if err := NewProviderWithFallback(down, down).IsAvailable(); err == nil {
		t.Error("Expected error when both providers are down")
	}
}

func TestESpeakConfigFromOptions(t *testing.T) {
	config := ESpeakConfigFromOptions(Options{Language: "fr+m3", Rate: 1.0, Pitch: 1.2})

	if config.Voice != "fr+m3" {
		t.Errorf("Expected voice 'fr+m3', got '%s'", config.Voice)
	}

	if config.Speed != 150 {
		t.Errorf("Expected speed 150, got %d", config.Speed)
	}

	if config.Pitch != 60 {
		t.Errorf("Expected pitch 60, got %d", config.Pitch)
	}
}

func TestESpeakConfigFromOptions_Defaults(t *testing.T) {
	config := ESpeakConfigFromOptions(Options{})

	if config.Voice != "fr" {
		t.Errorf("Expected default French voice, got '%s'", config.Voice)
	}

	if config.Speed != 140 {
		t.Errorf("Expected default speed, got %d", config.Speed)
	}
}
