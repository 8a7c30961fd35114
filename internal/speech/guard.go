package speech

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateSpeakable checks that text is worth sending to a synthesizer:
// non-empty and containing at least one letter. Phonetic rewrites of
// Creole phrases are Latin text with accented vowels.
func ValidateSpeakable(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}

	return fmt.Errorf("text must contain at least one letter")
}
