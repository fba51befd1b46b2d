package blob

import (
	"context"
	"fmt"
	"time"

	"shortboard/internal/database"

	"github.com/doug-martin/goqu/v9"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register postgres dialect
)

// PostgresStore keeps blobs in the kv_blobs table, one row per key. The
// table is created by the migrate command.
type PostgresStore struct {
	GoquDBWrapper *goqu.Database
}

func NewPostgres(dbURL string) (*PostgresStore, error) {
	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		return nil, err
	}

	return &PostgresStore{GoquDBWrapper: goqu.New("postgres", db)}, nil
}

func (s *PostgresStore) Driver() Driver { return DriverPostgres }

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	query := s.GoquDBWrapper.Select("data").
		From("kv_blobs").
		Where(goqu.Ex{"key": key})

	found, err := query.Executor().ScanValContext(ctx, &data)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	return data, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC()
	query := s.GoquDBWrapper.Insert("kv_blobs").
		Rows(goqu.Record{
			"key":        key,
			"data":       data,
			"updated_at": now,
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"data":       data,
			"updated_at": now,
		}))

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to upsert blob %s: %w", key, err)
	}

	return nil
}
