package token

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Apostrophe variants seen in Haitian Creole texts. Elided forms like
// m'ap and l'ap must survive with a plain ASCII apostrophe so the
// analysis service segments them consistently.
var apostropheVariants = []string{
	"’", // right single quotation mark
	"‘", // left single quotation mark
	"`",      // grave accent
	"ʼ", // modifier letter apostrophe
}

// NormalizeApostrophes folds apostrophe variants to the ASCII apostrophe
func NormalizeApostrophes(text string) string {
	for _, variant := range apostropheVariants {
		text = strings.ReplaceAll(text, variant, "'")
	}
	return text
}

// PrepareInput readies raw user text for submission to the analysis
// service: NFC-composes accented Creole vowels (è, ò, à), folds
// apostrophe variants and trims surrounding whitespace. An empty result
// means there is nothing to analyze.
func PrepareInput(text string) string {
	text = norm.NFC.String(text)
	text = NormalizeApostrophes(text)
	return strings.TrimSpace(text)
}
