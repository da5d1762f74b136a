package native

import (
	"context"

	"github.com/gxchain/gxwallet/db/storage"
	"github.com/pkg/errors"
)

// DBHost plays the embedding app on a desktop: every plugin keeps its entries in
// its own scope of a local database.
type DBHost struct {
	db storage.Database
}

func NewDBHost(db storage.Database) *DBHost {
	return &DBHost{db: db}
}

func (h *DBHost) Exec(ctx context.Context, plugin, action string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s := storage.NewScope(h.db, plugin)
	switch action {
	case "get":
		if len(args) != 1 {
			return "", errors.Errorf("%s get takes 1 argument, got %d", plugin, len(args))
		}
		v, err := s.Get([]byte(args[0]))
		if storage.IsNotFound(err) {
			return "", nil
		}
		return string(v), err
	case "set":
		if len(args) != 2 {
			return "", errors.Errorf("%s set takes 2 arguments, got %d", plugin, len(args))
		}
		return "", s.Put([]byte(args[0]), []byte(args[1]))
	}
	return "", errors.Errorf("%s: unsupported action %s", plugin, action)
}
