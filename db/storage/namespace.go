package storage

//
// This file implements a logical "scope" in a Database.
// A scope suffixes its name to keys. For example,
// given a scope named "4f7d", s.Get("gxb_wallets") queries "gxb_wallets_4f7d" from underlying Database.
// Each chain id gets its own scope so wallets of different chains never mix.
//

type scope struct {
	db     Database
	name   string
	suffix []byte
}

func NewScope(db Database, name string) Database {
	return &scope{
		db:     db,
		name:   name,
		suffix: []byte("_" + name),
	}
}

func (s *scope) Close() {

}

func (s *scope) Name() string {
	return s.name
}

func (s *scope) compositeKey(key []byte) []byte {
	ck := make([]byte, 0, len(key)+len(s.suffix))
	ck = append(ck, key...)
	return append(ck, s.suffix...)
}

//
// DatabaseGetter implementation
//

// check existence of the given key
func (s *scope) Has(key []byte) (bool, error) {
	return s.db.Has(s.compositeKey(key))
}

// query the value of the given key
func (s *scope) Get(key []byte) ([]byte, error) {
	return s.db.Get(s.compositeKey(key))
}

//
// DatabasePutter implementation
//

// insert a new key-value pair, or update the value if the given key already exists
func (s *scope) Put(key []byte, value []byte) error {
	return s.db.Put(s.compositeKey(key), value)
}

//
// DatabaseDeleter implementation
//

// delete the given key and its value
func (s *scope) Delete(key []byte) error {
	return s.db.Delete(s.compositeKey(key))
}
