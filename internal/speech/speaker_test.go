package speech

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSpeak(t *testing.T) {
	provider := &fakeProvider{name: "fake"}
	speaker := NewSpeaker(provider, t.TempDir(), "mp3")

	utterance, err := speaker.Speak(context.Background(), "bon-joo")
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	if err := utterance.Wait(); err != nil {
		t.Errorf("Utterance failed: %v", err)
	}

	if utterance.ID.String() == "" {
		t.Error("Expected utterance ID")
	}

	if utterance.File == "" {
		t.Error("Expected output file path")
	}

	if len(provider.calls) != 1 || provider.calls[0] != "bon-joo" {
		t.Errorf("Unexpected provider calls: %v", provider.calls)
	}
}

func TestSpeak_EmptyText(t *testing.T) {
	speaker := NewSpeaker(&fakeProvider{name: "fake"}, t.TempDir(), "mp3")

	if _, err := speaker.Speak(context.Background(), "  "); err == nil {
		t.Error("Expected error for empty text")
	}
}

func TestSpeak_ProviderError(t *testing.T) {
	provider := &fakeProvider{name: "fake", err: errors.New("synth down")}
	speaker := NewSpeaker(provider, t.TempDir(), "mp3")

	utterance, err := speaker.Speak(context.Background(), "bon-joo")
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	if err := utterance.Wait(); err == nil {
		t.Error("Expected provider error via utterance handle")
	}
}

func TestSpeak_Cancel(t *testing.T) {
	provider := &fakeProvider{name: "fake", block: make(chan struct{})}
	speaker := NewSpeaker(provider, t.TempDir(), "mp3")

	utterance, err := speaker.Speak(context.Background(), "bon-joo")
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	utterance.Cancel()

	if err := utterance.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSpeak_NewRequestSupersedes(t *testing.T) {
	provider := &fakeProvider{name: "fake", block: make(chan struct{})}
	speaker := NewSpeaker(provider, t.TempDir(), "mp3")

	first, err := speaker.Speak(context.Background(), "bon-joo")
	if err != nil {
		t.Fatalf("First Speak failed: %v", err)
	}

	// Give the first goroutine time to reach the provider
	waitForCalls(t, provider, 1)

	second, err := speaker.Speak(context.Background(), "meh-see")
	if err != nil {
		t.Fatalf("Second Speak failed: %v", err)
	}

	// The first utterance is cancelled by the second
	if err := first.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected first utterance cancelled, got %v", err)
	}

	close(provider.block)
	if err := second.Wait(); err != nil {
		t.Errorf("Second utterance failed: %v", err)
	}

	if current := speaker.Current(); current != second {
		t.Error("Expected second utterance to be current")
	}
}

func waitForCalls(t *testing.T, provider *fakeProvider, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if provider.callCount() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Provider never reached %d calls", n)
}
