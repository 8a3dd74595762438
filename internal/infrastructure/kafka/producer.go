package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"github.com/shopsphere/catalog-service/internal/cfg"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/shopsphere/catalog-service/pkg/jitter"
	"github.com/shopsphere/catalog-service/pkg/logger"
)

const (
	defaultPartitions        = 3
	defaultReplicationFactor = 1

	retryBackoffBase = 100 * time.Millisecond
	retryBackoffMax  = 2 * time.Second
)

// Producer публикует события изменения каталога в Kafka.
// Ключ сообщения — product_id, события одного продукта попадают в одну партицию.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// WriteMessage сериализует событие в JSON и отправляет его с ретраями.
func (p *Producer) WriteMessage(ctx context.Context, event *domain.ProductEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ProductID, 10)),
		Value: value,
	}

	var lastErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := jitter.ExponentialBackoff(retryBackoffBase, retryBackoffMax, attempt, jitter.DefaultJitter)
			select {
			case <-ctx.Done():
				return e.Wrap(whereami.WhereAmI(), ctx.Err())
			case <-time.After(backoff):
			}
		}

		lastErr = p.writer.WriteMessages(ctx, msg)
		if lastErr == nil {
			return nil
		}

		p.logger.Warnf("Kafka write attempt %d failed for event %s: %v",
			attempt+1, event.EventID, lastErr)
	}

	return e.Wrap(whereami.WhereAmI(), lastErr)
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	// Буфер на 1: запоздавший результат CreateTopics не подвесит горутину,
	// соединение закроет defer.
	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     defaultPartitions,
			ReplicationFactor: defaultReplicationFactor,
		})
	}()

	return awaitTopicCreate(done, timeout, p.cfg.Topic)
}

// awaitTopicCreate ждёт результат создания топика не дольше timeout.
func awaitTopicCreate(done <-chan error, timeout time.Duration, topic string) error {
	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", topic, err))
		}
		return nil
	case <-time.After(timeout):
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
