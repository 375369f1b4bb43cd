package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

// KafkaWriter is the subset of *kafka.Writer the publisher depends on,
// narrowed to a testable interface.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// messageKey picks the Kafka message key for one outbound value. The
// two topics this publisher serves key differently (§6): the inbound
// partner-company-events topic keys by corp_code to preserve per-company
// ordering, while the outbound partner-company-restored topic keys by
// the partner UUID.
type messageKey func(any) []byte

func keyByCorpCode(v any) []byte {
	e, ok := v.(PartnerEvent)
	if !ok || e.CorpCode == nil {
		return nil
	}
	return []byte(*e.CorpCode)
}

func keyByPartnerID(v any) []byte {
	switch e := v.(type) {
	case PartnerEvent:
		if e.PartnerCompanyID == nil {
			return nil
		}
		return []byte(*e.PartnerCompanyID)
	case PartnerRestoredPayload:
		return []byte(e.ID)
	default:
		return nil
	}
}

// KafkaPublisher publishes PartnerEvent or PartnerRestoredPayload
// values onto one Kafka topic through a buffered channel drained by a
// single background goroutine, so Publish never blocks the caller on
// broker latency. One instance serves exactly one topic, so a given
// instance only ever sees one of the two payload shapes.
type KafkaPublisher struct {
	writer    KafkaWriter
	events    chan any
	logger    *zap.Logger
	closeChan chan struct{}
	keyFunc   messageKey
}

// NewKafkaPublisher dials brokers[0] to ensure topic exists (creating it
// with three partitions when it does not) and starts the background
// publish loop. Messages are keyed by corp_code, matching the inbound
// partner-company-events topic contract.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) (*KafkaPublisher, error) {
	return newKafkaPublisher(brokers, topic, logger, keyByCorpCode)
}

// NewRestoreKafkaPublisher is the same publisher, keyed by partner UUID
// instead of corp_code, for the outbound partner-company-restored topic.
func NewRestoreKafkaPublisher(brokers []string, topic string, logger *zap.Logger) (*KafkaPublisher, error) {
	return newKafkaPublisher(brokers, topic, logger, keyByPartnerID)
}

func newKafkaPublisher(brokers []string, topic string, logger *zap.Logger, keyFunc messageKey) (*KafkaPublisher, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	named := logger.Named("kafka_publisher")
	if err := conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	}); err != nil {
		named.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	p := &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan any, 1000),
		logger:    named,
		closeChan: make(chan struct{}),
		keyFunc:   keyFunc,
	}
	go p.eventLoop()
	return p, nil
}

// Publish enqueues event for asynchronous delivery. If the internal
// queue is full the event is dropped and logged rather than blocking
// the caller — this is the "fire-and-forget" contract from the design
// note.
func (p *KafkaPublisher) Publish(event PartnerEvent) {
	p.enqueue(event, zap.String("action", string(event.Action)))
}

// PublishRestored is the RestorePublisher counterpart of Publish, used
// only by the instance constructed with NewRestoreKafkaPublisher.
func (p *KafkaPublisher) PublishRestored(payload PartnerRestoredPayload) {
	p.enqueue(payload, zap.String("partner_company_id", payload.ID))
}

func (p *KafkaPublisher) enqueue(event any, dropField zap.Field) {
	select {
	case p.events <- event:
	default:
		p.logger.Warn("kafka publisher queue full, dropping event", dropField)
	}
}

func (p *KafkaPublisher) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *KafkaPublisher) sendEvent(ctx context.Context, event any) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("failed to serialize event", zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{Key: p.keyFunc(event), Value: value})
	if err != nil {
		p.logger.Error("failed to publish event", zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	close(p.closeChan)
	return p.writer.Close()
}
