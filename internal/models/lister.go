package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/kreyollingua/pale/internal/speech"
)

// Lister handles listing OpenAI models and voices usable for synthesis
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// openAIVoices are the voices accepted by the OpenAI speech endpoint
var openAIVoices = []string{
	"alloy", "ash", "ballad", "coral", "echo", "fable",
	"nova", "onyx", "sage", "shimmer", "verse",
}

// ListAvailableVoices lists TTS-capable OpenAI models for the current
// API key, plus the fixed voice names and the espeak-ng fallback voices
func (l *Lister) ListAvailableVoices() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .pale.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ttsModels := []string{}
	for _, model := range models.Models {
		if strings.Contains(model.ID, "tts") || strings.Contains(model.ID, "audio") {
			ttsModels = append(ttsModels, model.ID)
		}
	}
	sort.Strings(ttsModels)

	fmt.Println("Text-to-Speech Models:")
	if len(ttsModels) == 0 {
		fmt.Println("  No TTS models found")
	} else {
		for _, model := range ttsModels {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nOpenAI Voices:")
	for _, voice := range openAIVoices {
		fmt.Printf("  %s\n", voice)
	}

	fmt.Println("\nespeak-ng Voices (offline fallback):")
	for _, voice := range speech.ListESpeakVoices() {
		fmt.Printf("  %s\n", voice)
	}

	return nil
}
