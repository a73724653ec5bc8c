package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"railbooking/internal/logger"
	"railbooking/internal/models"
)

// Producer streams booking lifecycle events to a single topic, keyed by PNR
// so all events for one ticket land on the same partition.
type Producer struct {
	Writer *kafka.Writer
	Logger *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer, Logger: log}
}

func (p *Producer) PublishTicketBooked(ticket models.Ticket) error {
	return p.publish(models.NewBookingEvent(models.EventTicketBooked, ticket))
}

func (p *Producer) PublishTicketUpdated(ticket models.Ticket) error {
	return p.publish(models.NewBookingEvent(models.EventTicketUpdated, ticket))
}

func (p *Producer) PublishTicketCancelled(ticket models.Ticket) error {
	return p.publish(models.NewBookingEvent(models.EventTicketCancelled, ticket))
}

func (p *Producer) publish(event models.BookingEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.Logger.LogKafka("PUBLISH", p.Writer.Topic, event.EventType+" "+event.PNR)

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(event.PNR),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
