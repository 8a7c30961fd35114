package session

import (
	"fmt"
	"strings"

	"github.com/kreyollingua/pale/internal/token"
)

// FormatTokenLine renders one token as a fixed-width terminal line.
// Tokens whose spelling the service changed are flagged with '*' so the
// rendering layer can emphasize them.
func FormatTokenLine(t token.Token) string {
	marker := " "
	if token.WasNormalized(t) {
		marker = "*"
	}
	return fmt.Sprintf("%s %-14s %-18s %-8s %s",
		marker, t.Original, t.Normalized, token.PartOfSpeech(t), token.Definition(t))
}

// FormatResult renders a whole analysis result for terminal display
func FormatResult(result *token.Result) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Normalized: %s\n", result.NormalizedText)
	if len(result.Tokens) > 0 {
		fmt.Fprintf(&b, "\n  %-14s %-18s %-8s %s\n", "Original", "Normalized", "POS", "Definition")
		for _, t := range result.Tokens {
			b.WriteString(FormatTokenLine(t))
			b.WriteString("\n")
		}
	}
	return b.String()
}
