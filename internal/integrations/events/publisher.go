package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageWriter то, что нужно Publisher от kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventRecorder учёт отправленных событий (метрики)
type EventRecorder interface {
	RecordBookingEvent(eventType string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирований в Kafka.
// Ключ сообщения - ID бронирования, чтобы события одного бронирования шли по порядку.
type Publisher struct {
	writer   MessageWriter
	recorder EventRecorder
	log      Logger
	now      func() time.Time
}

// NewKafkaWriter создает writer для топика событий
func NewKafkaWriter(brokers []string, topic string, batchTimeout time.Duration) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker is required", ErrInvalidConfig)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrInvalidConfig)
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: batchTimeout,
		MaxAttempts:  3,
	}, nil
}

// NewPublisher создает новый экземпляр publisher
func NewPublisher(writer MessageWriter, recorder EventRecorder, log Logger) *Publisher {
	return &Publisher{
		writer:   writer,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// Publish отправляет событие. ID и время проставляются, если не заданы.
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "event-id", Value: []byte(event.ID)},
		},
	})

	if p.recorder != nil {
		p.recorder.RecordBookingEvent(event.Type, err)
	}

	if err != nil {
		p.log.Error("Publish: failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
		return fmt.Errorf("%w: %s booking id=%d: %v", ErrPublish, event.Type, event.BookingID, err)
	}

	p.log.Info("Publish: %s for booking id=%d published, event_id=%s", event.Type, event.BookingID, event.ID)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда брокер отключён в конфигурации
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event BookingEvent) error {
	return nil
}
