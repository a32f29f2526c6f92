package badgerfx

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

type note struct {
	ID   string `json:"id"`
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

func (n *note) StorageKey() string       { return "note:id:" + n.ID }
func (n *note) StorageIndexes() []string { return []string{"note:tag:" + n.Tag} }

func (n *note) MarshalStorage() ([]byte, error) { return json.Marshal(n) }

func (n *note) UnmarshalStorage(data []byte) error { return json.Unmarshal(data, n) }

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(Config{InMemory: true}.Build().WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestRepository_WriteReadDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(func() *note { return &note{} })

	err := db.Update(func(txn *badger.Txn) error {
		if err := repo.Write(txn, &note{ID: "1", Tag: "a", Text: "first"}); err != nil {
			return err
		}
		return repo.Write(txn, &note{ID: "2", Tag: "b", Text: "second"})
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.View(func(txn *badger.Txn) error {
		n, err := repo.ReadByIndex(txn, "note:tag:b")
		if err != nil {
			return err
		}
		if n.Text != "second" {
			t.Errorf("ReadByIndex() text = %q, want %q", n.Text, "second")
		}

		all, err := repo.List(txn, "note:id:", badger.DefaultIteratorOptions)
		if err != nil {
			return err
		}
		if len(all) != 2 {
			t.Errorf("List() returned %d entities, want 2", len(all))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Update(func(txn *badger.Txn) error { return repo.Delete(txn, "note:id:1") }); err != nil {
		t.Fatal(err)
	}

	err = db.View(func(txn *badger.Txn) error {
		_, err := repo.Read(txn, "note:id:1")
		return err
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
