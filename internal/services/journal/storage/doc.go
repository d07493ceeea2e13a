// Package storage defines persistence contracts for journal entries, weekly
// threads and synthesized reflections.
//
// These interfaces keep the journal domain service separate from storage
// technology; the uniqueness guarantees on threads and reflections are the
// correctness backstop for concurrent creation.
package storage
