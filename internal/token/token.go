package token

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Known tag kinds emitted by the analysis service. The service may emit
// additional kinds; unknown kinds are carried through untouched.
const (
	KindDefinition   = "DEF"
	KindPartOfSpeech = "POS"
)

// Sentinel values substituted when a tag lookup misses.
const (
	NoDefinition = "No definition found"
	UnknownPOS   = "Unknown"
)

// Token is one word or unit from an analyzed sentence
type Token struct {
	Original   string
	Normalized string
	Tags       []string
}

// Result holds the full output of one analysis request, with tokens in
// the order the service returned them
type Result struct {
	NormalizedText string
	Tokens         []Token
}

// rawToken mirrors the wire format of a single token
type rawToken struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Tags       []string `json:"tags"`
}

// rawResponse mirrors the wire format of the /analyze response
type rawResponse struct {
	NormalizedText string     `json:"normalized_text"`
	Tokens         []rawToken `json:"tokens"`
}

// ParseResponse decodes an /analyze response body into a Result.
// Missing fields default to empty values; only malformed JSON is an error.
func ParseResponse(data []byte) (*Result, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	result := &Result{
		NormalizedText: raw.NormalizedText,
		Tokens:         make([]Token, 0, len(raw.Tokens)),
	}

	for _, rt := range raw.Tokens {
		result.Tokens = append(result.Tokens, parseToken(rt))
	}

	return result, nil
}

// parseToken converts a wire token, substituting empty defaults for
// anything the service left out
func parseToken(rt rawToken) Token {
	t := Token{
		Original:   rt.Original,
		Normalized: rt.Normalized,
		Tags:       rt.Tags,
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// LookupTag scans the token's tags in order and returns the value of the
// first tag whose kind matches. Kind comparison is case-sensitive. Tags
// without a ':' separator are ignored.
func LookupTag(t Token, kind string) (string, bool) {
	for _, tag := range t.Tags {
		k, v, found := strings.Cut(tag, ":")
		if !found {
			continue
		}
		if k == kind {
			return v, true
		}
	}
	return "", false
}

// Definition returns the token's DEF tag value, or the NoDefinition
// sentinel when the token carries none
func Definition(t Token) string {
	if v, ok := LookupTag(t, KindDefinition); ok {
		return v
	}
	return NoDefinition
}

// PartOfSpeech returns the token's POS tag value, or the UnknownPOS
// sentinel when the token carries none
func PartOfSpeech(t Token) string {
	if v, ok := LookupTag(t, KindPartOfSpeech); ok {
		return v
	}
	return UnknownPOS
}

// WasNormalized reports whether the service changed the token's spelling.
// The comparison is an exact, case-sensitive string compare.
func WasNormalized(t Token) bool {
	return t.Original != t.Normalized
}
