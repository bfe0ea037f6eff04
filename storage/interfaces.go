package storage

import (
	"context"
	"time"

	"github.com/harborview/signals/core"
)

// ProfileRepository manages the profiles collection: one CompanyProfile
// per slug. Implementations must be thread-safe.
type ProfileRepository interface {
	// UpsertProfile inserts or updates the profile keyed by its slug.
	// The write is a field-merge, not a full replace: when a profile
	// already exists, its Watchlist and Monitoring fields survive the
	// upsert untouched, since those are owned by other write paths.
	// UpdatedAt is refreshed on every upsert. Returns the record as
	// persisted.
	UpsertProfile(ctx context.Context, profile *core.CompanyProfile) (*core.CompanyProfile, error)

	// GetProfile retrieves a profile by slug.
	// Returns ErrNotFound if no profile exists for the slug.
	GetProfile(ctx context.Context, slug string) (*core.CompanyProfile, error)

	// ListProfiles returns profiles ordered by UpdatedAt descending.
	// When watchlistOnly is set, only watchlisted profiles are returned.
	ListProfiles(ctx context.Context, watchlistOnly bool) ([]*core.CompanyProfile, error)

	// SearchProfiles returns up to limit profiles whose name or
	// description contains the query, case-insensitively.
	SearchProfiles(ctx context.Context, query string, limit int) ([]*core.CompanyProfile, error)

	// SetWatchlist flips the watchlist flag for an existing profile.
	// Returns ErrNotFound if no profile exists for the slug.
	SetWatchlist(ctx context.Context, slug string, enabled bool) error

	// DeleteProfile removes a profile by slug.
	// Returns ErrNotFound if no profile exists for the slug.
	DeleteProfile(ctx context.Context, slug string) error

	// Close releases repository resources.
	Close() error
}

// SnapshotRepository manages the append-only snapshot history.
type SnapshotRepository interface {
	// AddSnapshot appends an immutable snapshot row. Snapshots are never
	// updated or deleted by normal operation.
	AddSnapshot(ctx context.Context, snapshot *core.Snapshot) error

	// GetSnapshots returns up to limit snapshots for a slug, most
	// recent first.
	GetSnapshots(ctx context.Context, slug string, limit int) ([]*core.Snapshot, error)

	// Close releases repository resources.
	Close() error
}

// MetricRepository manages the append-only metric time series.
type MetricRepository interface {
	// AddSample appends one metric sample row.
	AddSample(ctx context.Context, sample *core.MetricSample) error

	// GetSamples returns samples for a slug with Timestamp >= since,
	// ordered by timestamp ascending.
	GetSamples(ctx context.Context, slug string, since time.Time) ([]*core.MetricSample, error)

	// Close releases repository resources.
	Close() error
}

// KnowledgeRepository manages embedded knowledge chunks and their
// vector similarity index.
type KnowledgeRepository interface {
	// ReplaceChunks atomically deletes every existing chunk for
	// (slug, source) and inserts the new set, recording digest as the
	// content fingerprint of the corpus the chunks were derived from.
	// The chunk set is never merged with the prior one.
	ReplaceChunks(ctx context.Context, slug string, source core.ChunkSource, digest core.Digest, chunks []*core.KnowledgeChunk) error

	// GetChunks returns the chunks for (slug, source) ordered by index.
	GetChunks(ctx context.Context, slug string, source core.ChunkSource) ([]*core.KnowledgeChunk, error)

	// CountChunks returns the number of chunks stored for (slug, source).
	CountChunks(ctx context.Context, slug string, source core.ChunkSource) (int, error)

	// SourceDigest returns the content fingerprint recorded by the last
	// ReplaceChunks for (slug, source), or zero when nothing is indexed.
	SourceDigest(ctx context.Context, slug string, source core.ChunkSource) (core.Digest, error)

	// FindSimilar finds chunks similar to the given vector. When slug is
	// non-empty, only that company's chunks are considered. Returns
	// chunks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score descending.
	FindSimilar(ctx context.Context, slug string, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error)

	// Close releases repository resources.
	Close() error
}
