// Package storage defines the repository contracts over the document
// store and vector index: profiles, snapshots, metric samples, and
// knowledge chunks. Backend implementations live in subpackages.
package storage
