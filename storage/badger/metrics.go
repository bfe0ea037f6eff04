package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
)

// MetricRepository implements storage.MetricRepository for BadgerDB.
type MetricRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MetricRepository = (*MetricRepository)(nil)

// NewMetricRepository creates a new MetricRepository.
func NewMetricRepository(backend *Backend) (*MetricRepository, error) {
	idSeq, err := backend.GetSequence(metricIDSeq)
	if err != nil {
		return nil, err
	}
	return &MetricRepository{backend: backend, idSeq: idSeq}, nil
}

// Close releases the ID sequence.
func (r *MetricRepository) Close() error {
	return r.idSeq.Release()
}

// AddSample appends one metric sample row.
func (r *MetricRepository) AddSample(ctx context.Context, sample *core.MetricSample) error {
	if sample.Slug == "" {
		return core.ErrEmptySlug
	}

	seq, err := r.idSeq.Next()
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTimeSeriesKey(metricPrefix, sample.Slug, sample.Timestamp, seq)
		if err := tx.Set(key, storage.MarshalSample(sample)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSamples returns samples for a slug with Timestamp >= since,
// ordered by timestamp ascending.
func (r *MetricRepository) GetSamples(ctx context.Context, slug string, since time.Time) ([]*core.MetricSample, error) {
	var samples []*core.MetricSample
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeTimeSeriesPrefix(metricPrefix, slug)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		seek := makePartialTimeSeriesKey(metricPrefix, slug, since)
		for iter.Seek(seek); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}
			var sample *core.MetricSample
			err := iter.Item().Value(func(val []byte) error {
				var err error
				sample, err = storage.UnmarshalSample(val)
				return err
			})
			if err != nil {
				return err
			}
			samples = append(samples, sample)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return samples, nil
}
