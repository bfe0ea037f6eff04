// Package knowledge maintains the semantic index over crawled and
// uploaded company text: deterministic chunking, batch embedding,
// replace-not-merge chunk storage with a content-digest short circuit,
// and similarity search scoped by company.
package knowledge
