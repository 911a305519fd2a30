package store

import (
	"errors"
	"fmt"
	"os"
)

// ErrKeyNotFound is returned by a Backend when a key has never been written.
var ErrKeyNotFound = errors.New("store: key not found")

// Backend is the raw key-value surface collections are serialized onto.
// Implementations must be safe for concurrent use.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open picks a backend from the STORE_DRIVER environment variable:
// "leveldb" (default), "mongo" or "redis".
func Open() (Backend, error) {
	driver := os.Getenv("STORE_DRIVER")
	switch driver {
	case "", "leveldb":
		path := os.Getenv("STORE_PATH")
		if path == "" {
			path = "octascan.db"
		}
		return OpenLevel(path)
	case "mongo":
		return OpenMongo(os.Getenv("MONGO_URI"), os.Getenv("MONGO_DATABASE"))
	case "redis":
		return OpenRedis(os.Getenv("REDIS_ADDR"))
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
