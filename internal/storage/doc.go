// Package storage provides the durable key-value store behind persisted
// client state. Values are written whole; reads of absent keys are not
// errors.
package storage
