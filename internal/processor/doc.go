// Package processor contains the command-line orchestration for analyzing
// Haitian Creole phrases. It wires the analysis client, phonetic rewriting,
// speech synthesis and the favorites store together behind the flags the
// user passed. This package serves as the main coordinator between all
// other components.
package processor
