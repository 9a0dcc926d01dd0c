package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinema_booking/constants"
	"cinema_booking/logger"

	"github.com/segmentio/kafka-go"
)

const (
	EntityMovie    = "movie"
	EntityTheater  = "theater"
	EntityScreen   = "screen"
	EntitySchedule = "schedule"
	EntitySeat     = "seat"
	EntityBooking  = "booking"
	EntityPayment  = "payment"
)

// StatusChanged is emitted after a status transition has been committed.
type StatusChanged struct {
	Entity   string    `json:"entity"`
	EntityID uint      `json:"entityId"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Source   string    `json:"source"`
	At       time.Time `json:"at"`
}

func (e StatusChanged) Key() string {
	return fmt.Sprintf("%s-%d", e.Entity, e.EntityID)
}

type Publisher interface {
	Publish(ctx context.Context, event StatusChanged) error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
	log    *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	return &KafkaPublisher{Writer: writer, log: log}
}

// Publish keys by entity so one entity's events stay ordered on a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event StatusChanged) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.log.Debug(constants.LOG_EVENT, fmt.Sprintf("publishing %s: %s", p.Writer.Topic, msgBytes))
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: msgBytes,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// LogPublisher only writes events to the log. Used when kafka is disabled.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event StatusChanged) error {
	p.log.Info(constants.LOG_EVENT, fmt.Sprintf("%s %s -> %s (%s)", event.Key(), event.From, event.To, event.Source))
	return nil
}
