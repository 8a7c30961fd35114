package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kreyollingua/pale/internal/favorites"
	"github.com/kreyollingua/pale/internal/phonetic"
	"github.com/kreyollingua/pale/internal/speech"
	"github.com/kreyollingua/pale/internal/token"
)

// ErrSuperseded is returned when a newer analyze request replaced this
// one before its response arrived
var ErrSuperseded = errors.New("analysis superseded by a newer request")

// Analyzer is the slice of the analysis client the session needs
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*token.Result, error)
}

// Notifier receives user-visible messages (service failures, persistence
// problems). A nil notifier discards them.
type Notifier func(message string)

// Session is the owned model behind one user session. The analysis path
// and the favorites path are unrelated resources and never share a lock.
type Session struct {
	analyzer Analyzer
	rules    *phonetic.RuleSet
	speaker  *speech.Speaker
	saved    *favorites.Store
	notify   Notifier

	mu         sync.Mutex
	generation uint64
	cancelPrev context.CancelFunc
	current    *token.Result
}

// New creates a session. rules may be nil (no phonetic corrections);
// speaker and saved may be nil when speech or favorites are unused.
func New(analyzer Analyzer, rules *phonetic.RuleSet, speaker *speech.Speaker, saved *favorites.Store, notify Notifier) *Session {
	return &Session{
		analyzer: analyzer,
		rules:    rules,
		speaker:  speaker,
		saved:    saved,
		notify:   notify,
	}
}

// Analyze submits text to the analysis service and, on success, makes the
// parsed result current. Empty input is silently ignored. A call made
// while a previous one is outstanding supersedes it: the old request's
// context is cancelled and its late response discarded.
func (s *Session) Analyze(ctx context.Context, text string) (*token.Result, error) {
	prepared := token.PrepareInput(text)
	if prepared == "" {
		return nil, nil
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	actx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	s.mu.Unlock()

	defer cancel()

	result, err := s.analyzer.Analyze(actx, prepared)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return nil, ErrSuperseded
	}
	s.cancelPrev = nil

	if err != nil {
		// No retry; the request state is back to idle
		s.notifyf("Analysis failed: %v", err)
		return nil, err
	}

	s.current = result
	return result, nil
}

// Current returns the most recent analysis result, or nil
func (s *Session) Current() *token.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Speak speaks the current result's normalized text. With no current
// result or nothing speakable it is a no-op.
func (s *Session) Speak(ctx context.Context) (*speech.Utterance, error) {
	result := s.Current()
	if result == nil {
		return nil, nil
	}
	return s.SpeakText(ctx, result.NormalizedText)
}

// SpeakText rewrites text into phonetic spelling and hands it to the
// synthesizer. Empty text is silently ignored.
func (s *Session) SpeakText(ctx context.Context, text string) (*speech.Utterance, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if s.speaker == nil {
		return nil, nil
	}

	spoken := phonetic.Rewrite(text, s.rules)

	utterance, err := s.speaker.Speak(ctx, spoken)
	if err != nil {
		s.notifyf("Speech failed: %v", err)
		return nil, err
	}
	return utterance, nil
}

// SaveFavorite adds the current result's normalized text to the
// favorites list. A no-op without a current result.
func (s *Session) SaveFavorite() error {
	result := s.Current()
	if result == nil || s.saved == nil {
		return nil
	}

	if err := s.saved.Add(result.NormalizedText); err != nil {
		s.notifyf("Could not save favorite: %v", err)
		return err
	}
	return nil
}

// RemoveFavorite deletes item from the favorites list
func (s *Session) RemoveFavorite(item string) error {
	if s.saved == nil {
		return nil
	}

	if err := s.saved.Remove(item); err != nil {
		s.notifyf("Could not remove favorite: %v", err)
		return err
	}
	return nil
}

// Favorites returns the saved phrases, newest first
func (s *Session) Favorites() []string {
	if s.saved == nil {
		return nil
	}
	return s.saved.Items()
}

func (s *Session) notifyf(format string, args ...interface{}) {
	if s.notify == nil {
		return
	}
	s.notify(fmt.Sprintf(format, args...))
}
