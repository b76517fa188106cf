package snapshot

import (
	"context"
	"sync"

	"github.com/ukfreewill/will-service/internal/will"
)

// Repository is the durable single-use snapshot slot that carries the
// Document Model across the external payment redirect. One slot per session:
// Save overwrites any pending snapshot, Consume reads and deletes in one
// move so a payment-return signal can never be replayed against stale data.
//
// Consume returns (nil, nil) when no snapshot is pending, a normal case
// (bookmarked success URL, cleared storage), never an error. A corrupt
// payload is also reported as absent; implementations log and discard it.
type Repository interface {
	Save(ctx context.Context, sessionID string, data *will.WillData) error
	Consume(ctx context.Context, sessionID string) (*will.WillData, error)
}

// MemoryRepository keeps snapshots in process memory. Used in tests and when
// no Redis is configured; a restart loses pending snapshots, which degrades
// to the documented no-snapshot path.
type MemoryRepository struct {
	mu    sync.Mutex
	slots map[string]will.WillData
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{slots: make(map[string]will.WillData)}
}

func (m *MemoryRepository) Save(ctx context.Context, sessionID string, data *will.WillData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[sessionID] = *data
	return nil
}

func (m *MemoryRepository) Consume(ctx context.Context, sessionID string) (*will.WillData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.slots[sessionID]
	if !ok {
		return nil, nil
	}
	delete(m.slots, sessionID)
	return &d, nil
}
