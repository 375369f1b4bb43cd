package events

import (
	"context"
	"sync"
)

// InMemoryBus satisfies Publisher, RestorePublisher, and Subscriber
// without a broker, letting Registry and Coordinator tests exercise
// real publish/consume wiring synchronously.
type InMemoryBus struct {
	mu               sync.Mutex
	handler          func(context.Context, PartnerEvent) error
	Received         []PartnerEvent
	ReceivedRestored []PartnerRestoredPayload
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{}
}

// Publish delivers event synchronously to the registered handler, if
// any, and always records it in Received for assertions.
func (b *InMemoryBus) Publish(event PartnerEvent) {
	b.mu.Lock()
	b.Received = append(b.Received, event)
	handler := b.handler
	b.mu.Unlock()

	if handler != nil {
		_ = handler(context.Background(), event)
	}
}

// PublishRestored records payload for assertions; the restore topic
// has no inbound handler to invoke.
func (b *InMemoryBus) PublishRestored(payload PartnerRestoredPayload) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ReceivedRestored = append(b.ReceivedRestored, payload)
}

func (b *InMemoryBus) RegisterHandler(fn func(context.Context, PartnerEvent) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = fn
}

// Start is a no-op: delivery already happens synchronously in Publish.
func (b *InMemoryBus) Start(ctx context.Context) {}

func (b *InMemoryBus) Close() error { return nil }
