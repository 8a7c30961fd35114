// Package phonetic rewrites normalized Haitian Creole text into an
// approximate phonetic spelling so a speech synthesizer without native
// Creole support produces intelligible pronunciation. Corrections are
// data, not code: an ordered rule table applied sequentially over the
// evolving string.
package phonetic
