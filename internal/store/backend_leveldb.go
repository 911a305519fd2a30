package store

import (
	"errors"
	"log"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelBackend persists collections in an embedded LevelDB database.
// This is the default driver: no external process required.
type LevelBackend struct {
	db *leveldb.DB
}

func OpenLevel(path string) (*LevelBackend, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	log.Println("[store] LevelDB initialized at", path)
	return &LevelBackend{db: db}, nil
}

func (b *LevelBackend) Get(key string) ([]byte, error) {
	v, err := b.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	return v, err
}

func (b *LevelBackend) Put(key string, value []byte) error {
	return b.db.Put([]byte(key), value, nil)
}

func (b *LevelBackend) Delete(key string) error {
	return b.db.Delete([]byte(key), nil)
}

func (b *LevelBackend) Close() error {
	return b.db.Close()
}
