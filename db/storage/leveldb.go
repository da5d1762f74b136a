package storage

//
// This file implements Database interface based on levelDB.
//
// Call NewLevelDatabase() to create a new LevelDatabase or open an existing one.
// Call Close() method when the LevelDatabase is no longer needed.
//

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

type LevelDatabase struct {
	file string
	db   *leveldb.DB
}

// create a database
func NewLevelDatabase(file string) (*LevelDatabase, error) {
	db, err := leveldb.OpenFile(file, &opt.Options{
		Filter: filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDatabase{
		file: file,
		db:   db,
	}, nil
}

// close a database
func (db *LevelDatabase) Close() {
	_ = db.db.Close()
}

// get the disk file path
func (db *LevelDatabase) FileName() string {
	return db.file
}

//
// DatabaseGetter implementation
//

// check existence of the given key
func (db *LevelDatabase) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

// query the value of the given key
func (db *LevelDatabase) Get(key []byte) ([]byte, error) {
	data, err := db.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

//
// DatabasePutter implementation
//

// insert a new key-value pair, or update the value if the given key already exists
func (db *LevelDatabase) Put(key []byte, value []byte) error {
	return db.db.Put(key, value, nil)
}

//
// DatabaseDeleter implementation
//

// delete the given key and its value
func (db *LevelDatabase) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}
