package speech

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/kreyollingua/pale/internal"
)

// Utterance is the handle returned for each speak request. Callers can
// cancel it, wait for it, or let a newer request supersede it.
type Utterance struct {
	ID   uuid.UUID
	Text string // phonetic text sent to the synthesizer
	File string // output audio file

	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Cancel aborts the utterance if it is still in flight
func (u *Utterance) Cancel() {
	u.cancel()
}

// Done returns a channel closed when synthesis finishes or is cancelled
func (u *Utterance) Done() <-chan struct{} {
	return u.done
}

// Err returns the synthesis result. Valid after Done is closed; a
// cancelled utterance reports context.Canceled.
func (u *Utterance) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Wait blocks until the utterance completes and returns its result
func (u *Utterance) Wait() error {
	<-u.done
	return u.Err()
}

func (u *Utterance) finish(err error) {
	u.mu.Lock()
	u.err = err
	u.mu.Unlock()
	close(u.done)
}

// Speaker runs speak requests against a provider, one at a time. A new
// request supersedes the previous one: the in-flight utterance is
// cancelled before the new one starts. Synthesis itself is asynchronous;
// the caller gets the handle back immediately.
type Speaker struct {
	provider  Provider
	outputDir string
	format    string

	mu      sync.Mutex
	current *Utterance
}

// NewSpeaker creates a speaker writing audio files to outputDir
func NewSpeaker(provider Provider, outputDir, format string) *Speaker {
	if format == "" {
		format = "mp3"
	}
	return &Speaker{
		provider:  provider,
		outputDir: outputDir,
		format:    format,
	}
}

// Speak synthesizes text asynchronously and returns its handle. Any
// utterance still in flight is cancelled first; the last request wins.
// Empty text returns an error without touching the provider.
func (s *Speaker) Speak(ctx context.Context, text string) (*Utterance, error) {
	if err := ValidateSpeakable(text); err != nil {
		return nil, err
	}

	uctx, cancel := context.WithCancel(ctx)
	utterance := &Utterance{
		ID:     uuid.New(),
		Text:   text,
		File:   s.outputFile(text),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if s.current != nil {
		select {
		case <-s.current.done:
			// already finished
		default:
			s.current.Cancel()
		}
	}
	s.current = utterance
	s.mu.Unlock()

	go func() {
		defer cancel()

		if err := uctx.Err(); err != nil {
			utterance.finish(err)
			return
		}

		err := s.provider.GenerateAudio(uctx, text, utterance.File)
		if err == nil && uctx.Err() != nil {
			err = uctx.Err()
		}
		utterance.finish(err)
	}()

	return utterance, nil
}

// Current returns the most recently started utterance, or nil
func (s *Speaker) Current() *Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// outputFile builds a readable, unique filename for an utterance. The
// phrase prefix is truncated by runes so accented vowels survive.
func (s *Speaker) outputFile(text string) string {
	name := internal.SanitizeFilename(text)
	if runes := []rune(name); len(runes) > 24 {
		name = string(runes[:24])
	}
	return filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.%s", name, internal.GenerateEntryID(text), s.format))
}
