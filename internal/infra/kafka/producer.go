package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cm-go/internal/config"
	"cm-go/internal/events"
	"cm-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}

	producer = newWriter(cfg.Brokers)

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// newWriter 异步写入，WriteMessages 只入队不等待 broker，发送结果在 Completion 里记日志
func newWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logCompletion,
	}
}

func logCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		logger.Warn("Failed to deliver kafka message",
			zap.String("topic", m.Topic),
			zap.ByteString("key", m.Key),
			zap.Error(err),
		)
	}
}

// SendEvent 发送评论事件到 Kafka
func SendEvent(ctx context.Context, topic string, ev *events.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := SendRaw(ctx, topic, ev.Key(), payload); err != nil {
		return err
	}

	logger.Debug("Event queued",
		zap.String("type", ev.Type),
		zap.Int64("comment_id", ev.CommentID),
		zap.String("topic", topic),
	)

	return nil
}

// SendRaw 发送原始消息到指定 topic
func SendRaw(ctx context.Context, topic, key string, value []byte) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}
	return nil
}

// EventPublisher 通过全局生产者发布事件
type EventPublisher struct {
	Topic string
}

func NewEventPublisher(topic string) *EventPublisher {
	return &EventPublisher{Topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, ev *events.Event) error {
	return SendEvent(ctx, p.Topic, ev)
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
