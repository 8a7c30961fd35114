package phonetic

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is a single substitution: every occurrence of Pattern is replaced
// with Replacement. WholeWord restricts matching to standalone words, so
// a short marker like "ap" does not fire inside "manje". Matching is
// case-insensitive; whether a rule is word-bounded is declared here, never
// inferred from the pattern.
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	WholeWord   bool   `yaml:"whole_word"`

	re *regexp.Regexp
}

// RuleSet is an ordered table of rules. Order is semantically significant:
// rules apply sequentially over the evolving string, so a later rule may
// match text introduced by an earlier rule's replacement. Changing rule
// order changes results.
type RuleSet struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// compiled returns the occurrence matcher for a whole-word rule. The
// expression carries no boundary markers: regexp's \b is ASCII-only and
// would never match a pattern that starts or ends on an accented vowel
// (kafè, zòn, fè). The rewriter checks the neighboring runes instead.
func (r *Rule) compiled() *regexp.Regexp {
	if r.re != nil {
		return r.re
	}
	return compileWholeWord(r.Pattern)
}

func compileWholeWord(pattern string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(strings.ToLower(pattern)))
}

// compile precompiles the whole-word matchers so request processing never
// rebuilds them
func (rs *RuleSet) compile() {
	for i := range rs.Rules {
		if rs.Rules[i].WholeWord && rs.Rules[i].Pattern != "" {
			rs.Rules[i].re = compileWholeWord(rs.Rules[i].Pattern)
		}
	}
}

// LoadFile reads a rule table from a YAML file.
//
// File format:
//
//	version: "2025.08"
//	rules:
//	  - pattern: manje
//	    replacement: man-zhay
//	  - pattern: ap
//	    replacement: ahp
//	    whole_word: true
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}

	for i, rule := range rs.Rules {
		if rule.Pattern == "" {
			return nil, fmt.Errorf("rule %d has an empty pattern", i+1)
		}
	}

	rs.compile()
	return &rs, nil
}

// DefaultRules returns the built-in correction table for speaking Haitian
// Creole through a French synthesizer voice. It covers the known trouble
// spots: clipped syllables, nasal vowels and the standalone progressive
// marker.
func DefaultRules() *RuleSet {
	rs := &RuleSet{
		Version: "2025.08",
		Rules: []Rule{
			{Pattern: "mwen", Replacement: "mou-en"},
			{Pattern: "manje", Replacement: "man-zhay"},
			{Pattern: "kreyòl", Replacement: "kray-ol"},
			{Pattern: "bonjou", Replacement: "bon-joo"},
			{Pattern: "mèsi", Replacement: "meh-see"},
			{Pattern: "anpil", Replacement: "ahn-peel"},
			{Pattern: "kounye a", Replacement: "koon-yay ah"},
			{Pattern: "ap", Replacement: "ahp", WholeWord: true},
			{Pattern: "nou", Replacement: "noo", WholeWord: true},
			{Pattern: "ou", Replacement: "oo", WholeWord: true},
			{Pattern: "wi", Replacement: "wee", WholeWord: true},
			{Pattern: "yo", Replacement: "yoh", WholeWord: true},
		},
	}
	rs.compile()
	return rs
}
