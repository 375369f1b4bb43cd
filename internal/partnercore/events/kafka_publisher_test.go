package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockKafkaWriter struct {
	mock.Mock
}

func (m *mockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testEvent() PartnerEvent {
	corpCode := "00126380"
	partnerID := "9d3f2b1a-0000-4000-8000-000000000001"
	return PartnerEvent{CorpCode: &corpCode, PartnerCompanyID: &partnerID, Action: PartnerCompanyRegistered, Timestamp: time.Now()}
}

func TestKafkaPublisher_Publish_EnqueuesEvent(t *testing.T) {
	writer := new(mockKafkaWriter)
	p := &KafkaPublisher{writer: writer, events: make(chan any, 10), logger: zap.NewNop(), closeChan: make(chan struct{}), keyFunc: keyByCorpCode}

	p.Publish(testEvent())

	assert.Equal(t, 1, len(p.events))
}

func TestKafkaPublisher_Publish_DropsWhenQueueFull(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	p := &KafkaPublisher{
		writer:    new(mockKafkaWriter),
		events:    make(chan any, 1),
		logger:    zap.New(core),
		closeChan: make(chan struct{}),
		keyFunc:   keyByCorpCode,
	}

	p.Publish(testEvent())
	p.Publish(testEvent())

	assert.Equal(t, 1, recorded.FilterMessage("kafka publisher queue full, dropping event").Len())
}

func TestKafkaPublisher_SendEvent_Success(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	p := &KafkaPublisher{writer: writer, logger: zap.NewNop(), keyFunc: keyByCorpCode}

	p.sendEvent(context.Background(), testEvent())

	writer.AssertCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestKafkaPublisher_SendEvent_KeysByCorpCode(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == "00126380"
	})).Return(nil)
	p := &KafkaPublisher{writer: writer, logger: zap.NewNop(), keyFunc: keyByCorpCode}

	p.sendEvent(context.Background(), testEvent())

	writer.AssertExpectations(t)
}

func TestKafkaPublisher_SendEvent_KeysByPartnerID(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == "9d3f2b1a-0000-4000-8000-000000000001"
	})).Return(nil)
	p := &KafkaPublisher{writer: writer, logger: zap.NewNop(), keyFunc: keyByPartnerID}

	p.sendEvent(context.Background(), testEvent())

	writer.AssertExpectations(t)
}

func TestKafkaPublisher_PublishRestored_KeysByPartnerID(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == "9d3f2b1a-0000-4000-8000-000000000001"
	})).Return(nil)
	p := &KafkaPublisher{writer: writer, events: make(chan any, 1), logger: zap.NewNop(), closeChan: make(chan struct{}), keyFunc: keyByPartnerID}

	p.PublishRestored(PartnerRestoredPayload{ID: "9d3f2b1a-0000-4000-8000-000000000001", CorpCode: "00126380", Status: "ACTIVE"})

	select {
	case event := <-p.events:
		p.sendEvent(context.Background(), event)
	default:
		t.Fatal("PublishRestored did not enqueue the payload")
	}
	writer.AssertExpectations(t)
}

func TestKafkaPublisher_SendEvent_SerializationError(t *testing.T) {
	core, recorded := observer.New(zap.ErrorLevel)
	p := &KafkaPublisher{writer: new(mockKafkaWriter), logger: zap.New(core), keyFunc: keyByCorpCode}

	old := jsonMarshal
	jsonMarshal = func(_ interface{}) ([]byte, error) { return nil, errors.New("mock marshal error") }
	defer func() { jsonMarshal = old }()

	p.sendEvent(context.Background(), testEvent())

	assert.Equal(t, 1, recorded.FilterMessage("failed to serialize event").Len())
}

func TestKafkaPublisher_SendEvent_WriteError(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))
	core, recorded := observer.New(zap.ErrorLevel)
	p := &KafkaPublisher{writer: writer, logger: zap.New(core), keyFunc: keyByCorpCode}

	p.sendEvent(context.Background(), testEvent())

	assert.Equal(t, 1, recorded.FilterMessage("failed to publish event").Len())
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("Close").Return(nil)
	p := &KafkaPublisher{writer: writer, closeChan: make(chan struct{}), logger: zap.NewNop()}

	require := assert.New(t)
	require.NoError(p.Close())

	select {
	case <-p.closeChan:
	default:
		t.Error("closeChan not closed")
	}
	writer.AssertCalled(t, "Close")
}

func TestKafkaPublisher_EventLoop_DrainsQueue(t *testing.T) {
	writer := new(mockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	p := &KafkaPublisher{writer: writer, events: make(chan any, 1), logger: zap.NewNop(), closeChan: make(chan struct{}), keyFunc: keyByCorpCode}

	go p.eventLoop()
	p.events <- testEvent()
	time.Sleep(50 * time.Millisecond)
	close(p.closeChan)

	writer.AssertCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}
