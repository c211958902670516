package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// ErrNoSnapshot is returned by Load when no snapshot exists for the
// requested collection. Callers fall back to their seed collection.
var ErrNoSnapshot = errors.New("no snapshot stored for collection")

// Snapshots persists named collections as whole JSON documents, one slot per
// (user, collection). Every Save replaces the entire document; there are no
// partial updates.
type Snapshots interface {
	Load(ctx context.Context, userId int, collection string, out any) error
	Save(ctx context.Context, userId int, collection string, value any) error
}

type SnapshotStore struct {
	db *pgxpool.Pool
}

func NewSnapshotStore(db *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) Load(ctx context.Context, userId int, collection string, out any) error {
	query := `SELECT data FROM collection_snapshot WHERE user_id = $1 AND name = $2`

	var raw []byte
	err := s.db.QueryRow(ctx, query, userId, collection).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoSnapshot
	}
	if err != nil {
		err := fmt.Errorf("could not read snapshot %q: %w", collection, err)
		log.Error(err)
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("snapshot %q holds malformed data: %w", collection, err)
	}
	return nil
}

func (s *SnapshotStore) Save(ctx context.Context, userId int, collection string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode snapshot %q: %w", collection, err)
	}

	query := `INSERT INTO collection_snapshot (user_id, name, data, updated_at)
			  VALUES ($1, $2, $3, now())
			  ON CONFLICT (user_id, name) DO UPDATE SET data = $3, updated_at = now()`
	if _, err := s.db.Exec(ctx, query, userId, collection, raw); err != nil {
		err := fmt.Errorf("could not write snapshot %q: %w", collection, err)
		log.Error(err)
		return err
	}
	return nil
}
