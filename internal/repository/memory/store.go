// Package memory holds map-backed repositories with the same contracts as
// the PostgreSQL ones. Tests and local tooling use them in place of a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/database"
)

// Store is the shared state behind all repositories
type Store struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	users         map[string]user.User
	employees     map[string]employee.Employee
	leaves        map[string]leave.Leave
	announcements map[string]announcement.Announcement
	documents     map[string]document.Document

	// Now stamps created_at/updated_at; tests may replace it
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]user.User),
		employees:     make(map[string]employee.Employee),
		leaves:        make(map[string]leave.Leave),
		announcements: make(map[string]announcement.Announcement),
		documents:     make(map[string]document.Document),
		Now:           time.Now,
	}
}

type txKey struct{}

type transactorImpl struct {
	store *Store
}

// NewTransactor returns a unit of work that restores a snapshot of the store when fn fails.
// Transactions are serialized; a nested call joins the outer one.
func NewTransactor(store *Store) database.Transactor {
	return &transactorImpl{store: store}
}

func (t *transactorImpl) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snapshot := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) snapshot() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &Store{
		users:         cloneMap(s.users),
		employees:     cloneMap(s.employees),
		leaves:        cloneMap(s.leaves),
		announcements: cloneMap(s.announcements),
		documents:     cloneMap(s.documents),
	}
}

func (s *Store) restore(from *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = from.users
	s.employees = from.employees
	s.leaves = from.leaves
	s.announcements = from.announcements
	s.documents = from.documents
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// page applies skip/limit to an already ordered slice
func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// newestFirst orders by created_at desc, ties broken by id desc
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}
