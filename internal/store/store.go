// Package store owns the in-memory database document and keeps it in sync
// with the blob store: every read reloads the document so changes made by
// another process become visible, every mutation persists before returning.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"shortboard/internal/blob"
	"shortboard/pkg/models"

	"go.uber.org/zap"
)

// DocumentKey is the blob key the whole database document lives under.
const DocumentKey = "shortboard/db.json"

type Store struct {
	mu   sync.Mutex
	blob blob.Store
	log  *zap.Logger
}

func New(b blob.Store, log *zap.Logger) *Store {
	return &Store{blob: b, log: log}
}

// View runs fn against a freshly loaded document. Mutations made by fn are
// discarded.
func (s *Store) View(ctx context.Context, fn func(db *models.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(db)
}

// Update runs fn against a freshly loaded document and persists it when fn
// reports a change. A failing fn leaves the stored document untouched.
func (s *Store) Update(ctx context.Context, fn func(db *models.Database) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load(ctx)
	if err != nil {
		return err
	}

	changed, err := fn(db)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return s.persist(ctx, db)
}

// Seed writes the initial document. Existing data is preserved.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.blob.Get(ctx, DocumentKey)
	if err == nil {
		s.log.Info("Document already present, seed skipped")
		return nil
	}
	if !errors.Is(err, blob.ErrNotFound) {
		return err
	}

	s.log.Info("Seeding initial document")
	return s.persist(ctx, SeedDatabase())
}

func (s *Store) load(ctx context.Context) (*models.Database, error) {
	data, err := s.blob.Get(ctx, DocumentKey)
	if errors.Is(err, blob.ErrNotFound) {
		return SeedDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load document: %w", err)
	}

	var db models.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("could not decode document: %w", err)
	}
	return &db, nil
}

func (s *Store) persist(ctx context.Context, db *models.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	if err := s.blob.Put(ctx, DocumentKey, data); err != nil {
		return fmt.Errorf("could not persist document: %w", err)
	}
	return nil
}
