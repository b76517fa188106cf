package payment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Repository provides donation-record persistence.
type Repository interface {
	Insert(ctx context.Context, rec *DonationRecord) error
	List(ctx context.Context) ([]*DonationRecord, error)
}

// MemoryRepository is the in-memory donation ledger used when no MongoDB is
// configured, and in unit tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*DonationRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(ctx context.Context, rec *DonationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("don_%d", time.Now().UnixNano())
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*DonationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*DonationRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}
