// Package favorites keeps the user's saved normalized phrases: a
// deduplicated, newest-first list persisted whole to durable storage on
// every mutation.
package favorites
