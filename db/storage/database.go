package storage

import "github.com/pkg/errors"

// ErrNotFound is returned by Get for absent keys, whatever the backend
var ErrNotFound = errors.New("not found")

// interface for insertion and updating
type DatabasePutter interface {
	// insert a new key-value pair, or update the value if the given key already exists
	Put(key []byte, value []byte) error
}

// interface for deletion
type DatabaseDeleter interface {
	// delete the given key and its value
	Delete(key []byte) error
}

// interface for key & value query
type DatabaseGetter interface {
	// check existence of the given key
	Has(key []byte) (bool, error)

	// query the value of the given key
	Get(key []byte) ([]byte, error)
}

// interface for full functional database
type Database interface {
	DatabaseGetter
	DatabasePutter
	DatabaseDeleter
	Close()
}

// IsNotFound reports whether err means the key is absent
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
