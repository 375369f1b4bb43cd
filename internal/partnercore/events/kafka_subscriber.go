package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSubscriber consumes PartnerEvent values from one Kafka topic. It
// discovers the topic's partition count up front and runs one
// sequential consumer goroutine per partition, so the total consuming
// concurrency for a topic always matches its partition count.
type KafkaSubscriber struct {
	brokers []string
	topic   string
	groupID string
	logger  *zap.Logger
	handler func(context.Context, PartnerEvent) error
	readers []*kafka.Reader
}

func NewKafkaSubscriber(brokers []string, topic, groupID string, logger *zap.Logger) *KafkaSubscriber {
	return &KafkaSubscriber{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		logger:  logger.Named("kafka_subscriber"),
	}
}

func (c *KafkaSubscriber) RegisterHandler(fn func(context.Context, PartnerEvent) error) {
	c.handler = fn
}

// Start discovers the current partition count for the topic and spawns
// one reader goroutine per partition. Each reader is scoped to its
// group and topic only — kafka-go's consumer-group balancer assigns
// partitions across readers sharing groupID, so this simply ensures
// enough concurrent readers exist to keep pace with the partition
// count.
func (c *KafkaSubscriber) Start(ctx context.Context) {
	partitionCount, err := c.discoverPartitionCount()
	if err != nil {
		c.logger.Error("failed to discover partition count, defaulting to one consumer", zap.Error(err))
		partitionCount = 1
	}

	for i := 0; i < partitionCount; i++ {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: c.brokers,
			GroupID: c.groupID,
			Topic:   c.topic,
			Dialer:  kafka.DefaultDialer,
		})
		c.readers = append(c.readers, reader)
		go c.consume(ctx, reader)
	}
}

func (c *KafkaSubscriber) discoverPartitionCount() (int, error) {
	conn, err := kafka.DialLeader(context.Background(), "tcp", c.brokers[0], c.topic, 0)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(c.topic)
	if err != nil {
		return 0, err
	}
	if len(partitions) == 0 {
		return 1, nil
	}
	return len(partitions), nil
}

func (c *KafkaSubscriber) consume(ctx context.Context, reader *kafka.Reader) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("failed to fetch message", zap.Error(err))
			continue
		}

		var event PartnerEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("failed to parse event", zap.Error(err), zap.ByteString("value", msg.Value))
			continue
		}

		if err := c.handler(ctx, event); err != nil {
			c.logger.Error("failed to handle event", zap.Error(err), zap.String("action", string(event.Action)))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message", zap.Error(err), zap.String("action", string(event.Action)))
		}
	}
}

func (c *KafkaSubscriber) Close() error {
	var firstErr error
	for _, reader := range c.readers {
		if err := reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
