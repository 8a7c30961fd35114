package phonetic

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rewrite applies the rule table to text and returns the phonetic spelling.
//
// The input is lowercased first; rewriting is case-insensitive by contract
// and the output stays lowercase. Each rule then applies in table order
// over the current string state, replacing every occurrence left to right,
// non-overlapping. A rule whose pattern does not occur is a no-op. The
// same input and rule table always produce the same output.
func Rewrite(text string, rules *RuleSet) string {
	out := strings.ToLower(text)
	if rules == nil {
		return out
	}

	for i := range rules.Rules {
		rule := &rules.Rules[i]
		if rule.Pattern == "" {
			continue
		}

		if rule.WholeWord {
			out = replaceWholeWord(out, rule.compiled(), rule.Replacement)
		} else {
			out = strings.ReplaceAll(out, strings.ToLower(rule.Pattern), rule.Replacement)
		}
	}

	return out
}

// replaceWholeWord substitutes occurrences that stand alone as words: the
// runes on either side, if present, must not be letters or digits.
// Apostrophes are not word characters, so the "ap" in "m'ap" counts as a
// standalone word. Checking runes here instead of anchoring the pattern
// keeps accented letters inside the word on both edges.
func replaceWholeWord(text string, re *regexp.Regexp, replacement string) string {
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]

		if start > 0 {
			before, _ := utf8.DecodeLastRuneInString(text[:start])
			if isWordRune(before) {
				continue
			}
		}
		if end < len(text) {
			after, _ := utf8.DecodeRuneInString(text[end:])
			if isWordRune(after) {
				continue
			}
		}

		b.WriteString(text[last:start])
		b.WriteString(replacement)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
