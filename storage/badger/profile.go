package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *ProfileRepository) Close() error {
	return nil
}

// UpsertProfile inserts or updates the profile keyed by its slug.
// Watchlist and Monitoring of an existing record survive the upsert:
// they are owned by the watchlist toggle and the monitoring scheduler,
// and a pipeline run must never clobber them.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *core.CompanyProfile) (*core.CompanyProfile, error) {
	if err := core.ValidateProfile(profile); err != nil {
		return nil, err
	}

	stored := *profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(stored.Slug)

		existing, err := r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			stored.Watchlist = existing.Watchlist
			stored.Monitoring = existing.Monitoring
		}
		stored.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalProfile(&stored)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetProfile retrieves a profile by slug.
func (r *ProfileRepository) GetProfile(ctx context.Context, slug string) (*core.CompanyProfile, error) {
	var profile *core.CompanyProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		profile, err = r.readProfile(tx, makeProfileKey(slug))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, storage.ErrNotFound
	}
	return profile, nil
}

// ListProfiles returns profiles ordered by UpdatedAt descending.
func (r *ProfileRepository) ListProfiles(ctx context.Context, watchlistOnly bool) ([]*core.CompanyProfile, error) {
	var profiles []*core.CompanyProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanProfiles(tx, func(profile *core.CompanyProfile) {
			if watchlistOnly && !profile.Watchlist {
				return
			}
			profiles = append(profiles, profile)
		})
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(profiles, func(a, b *core.CompanyProfile) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return profiles, nil
}

// SearchProfiles returns up to limit profiles whose name or description
// contains the query, case-insensitively.
func (r *ProfileRepository) SearchProfiles(ctx context.Context, query string, limit int) ([]*core.CompanyProfile, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, storage.ErrInvalidQuery
	}

	var profiles []*core.CompanyProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanProfiles(tx, func(profile *core.CompanyProfile) {
			if strings.Contains(strings.ToLower(profile.Name), needle) ||
				strings.Contains(strings.ToLower(profile.Description), needle) {
				profiles = append(profiles, profile)
			}
		})
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(profiles, func(a, b *core.CompanyProfile) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if len(profiles) > limit {
		profiles = profiles[:limit]
	}
	return profiles, nil
}

// SetWatchlist flips the watchlist flag for an existing profile.
func (r *ProfileRepository) SetWatchlist(ctx context.Context, slug string, enabled bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(slug)
		profile, err := r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		profile.Watchlist = enabled
		profile.UpdatedAt = time.Now().UTC()
		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteProfile removes a profile by slug.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, slug string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(slug)
		profile, err := r.readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readProfile reads a profile within a transaction.
// Returns nil without error when the key does not exist.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.CompanyProfile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.CompanyProfile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalProfile(val)
		return err
	})
	return profile, err
}

// scanProfiles iterates every stored profile within a transaction.
func (r *ProfileRepository) scanProfiles(tx *badger.Txn, visit func(*core.CompanyProfile)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(profilePrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var profile *core.CompanyProfile
		err := iter.Item().Value(func(val []byte) error {
			var err error
			profile, err = storage.UnmarshalProfile(val)
			return err
		})
		if err != nil {
			return err
		}
		visit(profile)
	}
	return nil
}
