// Package blob is the persistence substrate of the dashboard: a key-value
// store with synchronous get/put semantics holding the serialized database
// document. Call sites depend on the Store interface, never on a concrete
// driver.
package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Driver identifies a blob backend driver.
type Driver string

const (
	// DriverMemory is the in-memory test driver.
	DriverMemory Driver = "memory"
	// DriverFilesystem is the local filesystem driver, the default.
	DriverFilesystem Driver = "filesystem"
	// DriverPostgres stores blobs in a Postgres key-value table.
	DriverPostgres Driver = "postgres"
)

// ErrNotFound indicates no blob is stored under the requested key.
var ErrNotFound = errors.New("blob not found")

// Store is the interface for blob storage backends.
type Store interface {
	Driver() Driver
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// OpenFromEnv builds a Store from the STORAGE_DRIVER environment variable.
// Unset selects the filesystem driver rooted at STORAGE_PATH (default
// ./data). The postgres driver connects via DATABASE_URL.
func OpenFromEnv() (Store, error) {
	driver := Driver(os.Getenv("STORAGE_DRIVER"))
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFilesystem, "":
		return NewFilesystem(os.Getenv("STORAGE_PATH"))
	case DriverPostgres:
		return NewPostgres(os.Getenv("DATABASE_URL"))
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}
