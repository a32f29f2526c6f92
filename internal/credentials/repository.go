package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/apiarycd/svncommit/pkg/badgerfx"
	"github.com/dgraph-io/badger/v4"
)

type Repository struct {
	db      *badger.DB
	entries *badgerfx.Repository[*entryModel]
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db:      db,
		entries: badgerfx.NewRepository(func() *entryModel { return &entryModel{} }),
	}
}

// Put creates or replaces the entry for (project, URL prefix).
func (r *Repository) Put(_ context.Context, entry Entry) error {
	model := newEntryModel(entry)

	err := r.db.Update(func(txn *badger.Txn) error {
		return r.entries.Write(txn, model)
	})
	if err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	return nil
}

// Get returns the entry stored for exactly (project, URL prefix).
func (r *Repository) Get(_ context.Context, project, urlPrefix string) (Entry, error) {
	var model *entryModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.entries.Read(txn, storageKey(project, urlPrefix))
		if err == nil {
			model = found
		}

		return err
	})
	if errors.Is(err, badgerfx.ErrNotFound) {
		return Entry{}, fmt.Errorf("%w: %s %s", ErrNotFound, project, urlPrefix)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get credentials: %w", err)
	}

	return newEntry(model), nil
}

// Delete removes the entry for (project, URL prefix).
func (r *Repository) Delete(_ context.Context, project, urlPrefix string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return r.entries.Delete(txn, storageKey(project, urlPrefix))
	})
	if errors.Is(err, badgerfx.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, project, urlPrefix)
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}

// List returns every stored entry.
func (r *Repository) List(_ context.Context) ([]Entry, error) {
	var entries []Entry

	err := r.db.View(func(txn *badger.Txn) error {
		models, err := r.entries.List(txn, prefixByKey, badger.DefaultIteratorOptions)
		if err != nil {
			return err
		}

		for _, m := range models {
			entries = append(entries, newEntry(m))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	return entries, nil
}

// ListByProject returns the entries bound to project, global entries when
// project is empty.
func (r *Repository) ListByProject(_ context.Context, project string) ([]Entry, error) {
	var entries []Entry

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		indexPrefix := []byte(prefixByProject + url.QueryEscape(project) + ":")
		for it.Seek(indexPrefix); it.ValidForPrefix(indexPrefix); it.Next() {
			model, err := r.entries.ReadByIndex(txn, string(it.Item().KeyCopy(nil)))
			if err != nil {
				return err
			}

			entries = append(entries, newEntry(model))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list project credentials: %w", err)
	}

	return entries, nil
}
