// Package token models the analysis service response: annotated tokens
// carrying original and normalized spellings plus "KIND:VALUE" tags, with
// tolerant parsing and typed tag lookup.
package token
