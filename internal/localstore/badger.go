package localstore

import (
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerKV is the durable KV implementation. An empty path opens the store
// in memory, which tests rely on.
type BadgerKV struct {
	db *badger.DB
}

func OpenBadger(path string) (*BadgerKV, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, errors.Wrap(err, "create local store dir")
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger")
	}
	return &BadgerKV{db: db}, nil
}

func (b *BadgerKV) Get(userID string) ([]byte, error) {
	var blob []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(userID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrBlobNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			blob = make([]byte, len(val))
			copy(blob, val)
			return nil
		})
	})
	return blob, err
}

func (b *BadgerKV) Set(userID string, blob []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(userID), blob)
	})
}

func (b *BadgerKV) Close() error {
	return b.db.Close()
}

func key(userID string) []byte {
	return []byte("user:" + userID)
}
