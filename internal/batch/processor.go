package batch

import (
	"fmt"
	"os"
	"strings"
)

// PhraseEntry represents one phrase from a batch file, with an optional
// English gloss
type PhraseEntry struct {
	Phrase string
	Gloss  string
}

// ReadBatchFile reads phrases from a file, one per line.
// Supported formats:
// - Phrase only: "M'ap manje"
// - With gloss: "M'ap manje = I am eating"
// - Comment lines starting with '#' and blank lines are skipped
func ReadBatchFile(filename string) ([]PhraseEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []PhraseEntry

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			phrase := strings.TrimSpace(parts[0])
			gloss := strings.TrimSpace(parts[1])

			if phrase == "" {
				// A gloss without a phrase is useless; skip it
				continue
			}

			entries = append(entries, PhraseEntry{Phrase: phrase, Gloss: gloss})
		} else {
			entries = append(entries, PhraseEntry{Phrase: line})
		}
	}

	return entries, nil
}
