package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBus_PublishDeliversToHandler(t *testing.T) {
	bus := NewInMemoryBus()

	var received []PartnerEvent
	bus.RegisterHandler(func(_ context.Context, e PartnerEvent) error {
		received = append(received, e)
		return nil
	})

	corpCode := "00126380"
	event := PartnerEvent{CorpCode: &corpCode, Action: PartnerCompanyRegistered, Timestamp: time.Now()}
	bus.Publish(event)

	require.Len(t, received, 1)
	assert.Equal(t, PartnerCompanyRegistered, received[0].Action)
	assert.Len(t, bus.Received, 1, "Received should track every published event regardless of handler outcome")
}

func TestInMemoryBus_PublishWithoutHandler(t *testing.T) {
	bus := NewInMemoryBus()
	assert.NotPanics(t, func() {
		bus.Publish(PartnerEvent{Action: PartnerCompanyUpdated, Timestamp: time.Now()})
	})
	assert.Len(t, bus.Received, 1)
}

func TestInMemoryBus_PublishRestored(t *testing.T) {
	bus := NewInMemoryBus()
	bus.PublishRestored(PartnerRestoredPayload{ID: "p1", CorpCode: "00126380", Status: "ACTIVE"})

	require.Len(t, bus.ReceivedRestored, 1)
	assert.Equal(t, "p1", bus.ReceivedRestored[0].ID)
}

func TestInMemoryBus_CloseIsNoop(t *testing.T) {
	bus := NewInMemoryBus()
	assert.NoError(t, bus.Close())
	bus.Start(context.Background())
}
