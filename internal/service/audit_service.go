package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

type AuditEntry struct {
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Changes      string
}

// AuditTrail persists audit entries asynchronously so mutations never wait
// on the audit store.
type AuditTrail struct {
	repo    AuditRepository
	metrics *metrics.Collector
	log     *zap.Logger
	entries chan *domain.AuditLog
	done    chan struct{}
}

const auditBufferSize = 10_000

func NewAuditTrail(repo AuditRepository, collector *metrics.Collector, log *zap.Logger) *AuditTrail {
	t := &AuditTrail{
		repo:    repo,
		metrics: collector,
		log:     log,
		entries: make(chan *domain.AuditLog, auditBufferSize),
		done:    make(chan struct{}),
	}
	go t.worker()
	return t
}

// LogAsync enqueues an audit entry for async persistence. If the buffer is
// full, the entry is dropped and a warning is emitted.
func (t *AuditTrail) LogAsync(entry AuditEntry) {
	al := &domain.AuditLog{
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Changes:      entry.Changes,
	}

	select {
	case t.entries <- al:
	default:
		t.metrics.AuditBufferDropped.Inc()
		t.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("resource", entry.ResourceType),
		)
	}
}

func (t *AuditTrail) Shutdown() {
	close(t.entries)
	select {
	case <-t.done:
	case <-time.After(10 * time.Second):
		t.log.Warn("audit trail shutdown timed out; some entries may be lost")
	}
}

func (t *AuditTrail) worker() {
	defer close(t.done)
	for entry := range t.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := t.repo.Create(ctx, entry); err != nil {
			t.log.Error("failed to persist audit log", zap.Error(err))
		} else {
			t.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
