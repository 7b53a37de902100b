package ledger

import (
	"context"
	"database/sql"
	"sync"

	"gorm.io/gorm"
)

// Store is the injected handle every ledger operation runs against.
// Mutations share the gate; whole-store jobs (backup/restore) take it exclusively.
type Store struct {
	db   *gorm.DB
	gate sync.RWMutex
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Read returns a context-bound handle for queries; reads never take the gate.
func (s *Store) Read(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Tx is one open store transaction. All quantity transitions are Tx methods so
// they can be composed inside a single commit (bulk import, batch shipments).
type Tx struct {
	db *gorm.DB
}

// DB exposes the transaction handle for collaborators that persist their own rows.
func (tx *Tx) DB() *gorm.DB { return tx.db }

// Nested runs fn inside a savepoint; a failure rolls back only fn's statements.
func (tx *Tx) Nested(fn func(*Tx) error) error {
	return tx.db.Transaction(func(inner *gorm.DB) error {
		return fn(&Tx{db: inner})
	})
}

// Write runs fn in one atomic transaction. Any non-ledger error is reported as KindStore.
func (s *Store) Write(ctx context.Context, fn func(*Tx) error) error {
	s.gate.RLock()
	defer s.gate.RUnlock()

	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Tx{db: db})
	}, s.txOptions()...)
	return StoreErr(err)
}

// Exclusive runs fn while no mutating transaction is in flight.
func (s *Store) Exclusive(ctx context.Context, fn func(db *gorm.DB) error) error {
	s.gate.Lock()
	defer s.gate.Unlock()
	return StoreErr(fn(s.db.WithContext(ctx)))
}

// Postgres varsayılanı da READ COMMITTED ama açıkça istiyoruz; sqlite zaten serializable.
func (s *Store) txOptions() []*sql.TxOptions {
	if s.db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelReadCommitted}}
	}
	return nil
}
