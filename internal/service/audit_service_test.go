package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/repository"
)

func TestAuditTrail_PersistsEntries(t *testing.T) {
	store := repository.NewAuditMemory()
	trail := NewAuditTrail(store, sharedCollector(), zap.NewNop())

	trail.LogAsync(AuditEntry{
		Action:       domain.ActionCreate,
		ResourceType: "appointment",
		ResourceID:   "a-1",
	})
	trail.LogAsync(AuditEntry{
		Action:       domain.ActionCancel,
		ResourceType: "appointment",
		ResourceID:   "a-1",
	})

	// Shutdown drains the buffer before returning
	trail.Shutdown()

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionCreate, entries[0].Action)
	assert.Equal(t, domain.ActionCancel, entries[1].Action)
	assert.Equal(t, "a-1", entries[0].ResourceID)
}

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.lock("Dr. Lee")

	acquired := make(chan struct{})
	go func() {
		u := km.lock("Dr. Lee")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	// a different key is independent
	other := km.lock("Dr. Patel")
	other()

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock never released")
	}
}
