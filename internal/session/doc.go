// Package session owns the client-side data flow: text goes to the
// analysis service, the tagged result becomes the display model, speak
// requests run through the phonetic rewrite into the synthesizer, and
// selected phrases land in the favorites store. Failures are absorbed
// here and surfaced as notifications, never as panics.
package session
