// Package models lists the OpenAI models and voices usable for speech
// synthesis, so users can discover what their API key gives access to.
package models
