package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	idSeq, err := backend.GetSequence(snapshotIDSeq)
	if err != nil {
		return nil, err
	}
	return &SnapshotRepository{backend: backend, idSeq: idSeq}, nil
}

// Close releases the ID sequence.
func (r *SnapshotRepository) Close() error {
	return r.idSeq.Release()
}

// AddSnapshot appends an immutable snapshot row.
func (r *SnapshotRepository) AddSnapshot(ctx context.Context, snapshot *core.Snapshot) error {
	if snapshot.Slug == "" {
		return core.ErrEmptySlug
	}

	seq, err := r.idSeq.Next()
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTimeSeriesKey(snapshotPrefix, snapshot.Slug, snapshot.Timestamp, seq)
		if err := tx.Set(key, storage.MarshalSnapshot(snapshot)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSnapshots returns up to limit snapshots for a slug, most recent first.
func (r *SnapshotRepository) GetSnapshots(ctx context.Context, slug string, limit int) ([]*core.Snapshot, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var snapshots []*core.Snapshot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTimeSeriesPrefix(snapshotPrefix, slug)
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration must seek past the last key in the prefix.
		seek := append(append([]byte{}, opts.Prefix...), maxSuffix...)
		for iter.Seek(seek); iter.Valid() && len(snapshots) < limit; iter.Next() {
			var snapshot *core.Snapshot
			err := iter.Item().Value(func(val []byte) error {
				var err error
				snapshot, err = storage.UnmarshalSnapshot(val)
				return err
			})
			if err != nil {
				return err
			}
			snapshots = append(snapshots, snapshot)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
