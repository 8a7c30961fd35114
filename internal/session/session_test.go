package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kreyollingua/pale/internal/favorites"
	"github.com/kreyollingua/pale/internal/phonetic"
	"github.com/kreyollingua/pale/internal/storage"
	"github.com/kreyollingua/pale/internal/token"
)

// fakeAnalyzer scripts analysis responses; when block is set, only the
// first call waits on it (or on its context being cancelled)
type fakeAnalyzer struct {
	result *token.Result
	err    error
	block  chan struct{}

	mu    sync.Mutex
	texts []string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (*token.Result, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	callNum := len(f.texts)
	f.mu.Unlock()

	if f.block != nil && callNum == 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.block:
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testResult(normalized string) *token.Result {
	return &token.Result{
		NormalizedText: normalized,
		Tokens: []token.Token{
			{Original: "M'ap", Normalized: "mwen ap", Tags: []string{"POS:AUX"}},
		},
	}
}

func TestAnalyze(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult("mwen ap manje")}
	s := New(analyzer, nil, nil, nil, nil)

	result, err := s.Analyze(context.Background(), "M'ap manje")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.NormalizedText != "mwen ap manje" {
		t.Errorf("Unexpected result: %s", result.NormalizedText)
	}

	if s.Current() != result {
		t.Error("Expected result to become current")
	}
}

func TestAnalyze_PreparesInput(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult("ok")}
	s := New(analyzer, nil, nil, nil, nil)

	s.Analyze(context.Background(), "  M’ap manje  ")

	if len(analyzer.texts) != 1 || analyzer.texts[0] != "M'ap manje" {
		t.Errorf("Expected folded, trimmed input, got %v", analyzer.texts)
	}
}

func TestAnalyze_EmptyInputIgnored(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult("ok")}
	s := New(analyzer, nil, nil, nil, nil)

	result, err := s.Analyze(context.Background(), "   ")
	if err != nil || result != nil {
		t.Errorf("Expected silent no-op for empty input, got (%v, %v)", result, err)
	}

	if len(analyzer.texts) != 0 {
		t.Error("Analyzer should not be called for empty input")
	}
}

func TestAnalyze_FailureNotifiesAndKeepsIdle(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("service down")}

	var messages []string
	s := New(analyzer, nil, nil, nil, func(m string) { messages = append(messages, m) })

	_, err := s.Analyze(context.Background(), "bonjou")
	if err == nil {
		t.Fatal("Expected error")
	}

	if len(messages) != 1 || !strings.Contains(messages[0], "Analysis failed") {
		t.Errorf("Expected failure notification, got %v", messages)
	}

	if s.Current() != nil {
		t.Error("Failed request must not set a current result")
	}
}

func TestAnalyze_SupersededRequestDiscarded(t *testing.T) {
	blocked := &fakeAnalyzer{result: testResult("old"), block: make(chan struct{})}
	s := New(blocked, nil, nil, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)

	var firstResult *token.Result
	var firstErr error
	go func() {
		defer wg.Done()
		firstResult, firstErr = s.Analyze(context.Background(), "premye fraz")
	}()

	// Wait for the first request to reach the analyzer
	waitFor(t, func() bool {
		blocked.mu.Lock()
		defer blocked.mu.Unlock()
		return len(blocked.texts) == 1
	})

	// The second call cancels the first request's context, so the
	// blocked analyzer returns context.Canceled for it
	result, err := s.Analyze(context.Background(), "dezyèm fraz")
	if err != nil {
		t.Fatalf("Second Analyze failed: %v", err)
	}

	wg.Wait()

	if firstErr == nil && firstResult != nil {
		t.Error("Expected first request to be superseded or cancelled")
	}

	if s.Current() != result {
		t.Error("Expected second result to be current")
	}
}

func TestSpeakText_RewritesBeforeSynthesis(t *testing.T) {
	// No speaker configured: SpeakText is a no-op but must not panic
	s := New(&fakeAnalyzer{}, phonetic.DefaultRules(), nil, nil, nil)

	utterance, err := s.SpeakText(context.Background(), "Mwen ap manje")
	if err != nil || utterance != nil {
		t.Errorf("Expected silent no-op without speaker, got (%v, %v)", utterance, err)
	}
}

func TestSpeak_NoCurrentResult(t *testing.T) {
	s := New(&fakeAnalyzer{}, nil, nil, nil, nil)

	utterance, err := s.Speak(context.Background())
	if err != nil || utterance != nil {
		t.Errorf("Expected no-op without current result, got (%v, %v)", utterance, err)
	}
}

func TestSaveFavorite(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult("mwen ap manje")}
	saved := favorites.Load(storage.NewMemory())
	s := New(analyzer, nil, nil, saved, nil)

	// Without a result, saving is a no-op
	if err := s.SaveFavorite(); err != nil {
		t.Errorf("SaveFavorite without result failed: %v", err)
	}
	if len(s.Favorites()) != 0 {
		t.Error("Expected no favorites yet")
	}

	s.Analyze(context.Background(), "M'ap manje")

	if err := s.SaveFavorite(); err != nil {
		t.Fatalf("SaveFavorite failed: %v", err)
	}

	items := s.Favorites()
	if len(items) != 1 || items[0] != "mwen ap manje" {
		t.Errorf("Expected saved normalized text, got %v", items)
	}

	// Saving again is a deduplicated no-op
	s.SaveFavorite()
	if len(s.Favorites()) != 1 {
		t.Error("Expected deduplicated favorites")
	}

	if err := s.RemoveFavorite("mwen ap manje"); err != nil {
		t.Fatalf("RemoveFavorite failed: %v", err)
	}
	if len(s.Favorites()) != 0 {
		t.Error("Expected empty favorites after removal")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	for i := 0; i < 400; i++ {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition never became true")
}
