package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/itchan-dev/simpleboard/shared/config"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
	sharedpg "github.com/itchan-dev/simpleboard/shared/storage/pg"
)

const itemsWithLikesView = "content_items_with_likes"

type Storage struct {
	db *sql.DB
	// read model for item listings; a missing view falls back to manual aggregation
	itemsView string
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db: db, itemsView: itemsWithLikesView}, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping is used by the health handler.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return internal_errors.NotFound(what + " not found")
	}
	return err
}

// ownedRowMissing explains why an owner-scoped update or delete touched no rows.
func ownedRowMissing(ctx context.Context, q sharedpg.Querier, table, id, what string) error {
	var exists bool
	err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return internal_errors.Forbidden("Only the owner can modify this " + what)
	}
	return internal_errors.NotFound(what + " not found")
}
