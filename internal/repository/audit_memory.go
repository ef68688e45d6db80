package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wardflow/wardflow/internal/domain"
)

type AuditMemory struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func NewAuditMemory() *AuditMemory {
	return &AuditMemory{}
}

func (r *AuditMemory) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.OccurredAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

// Entries returns a snapshot of everything recorded so far.
func (r *AuditMemory) Entries() []*domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.AuditLog(nil), r.entries...)
}
