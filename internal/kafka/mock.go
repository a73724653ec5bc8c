package kafka

import (
	"railbooking/internal/logger"
	"railbooking/internal/models"
)

// MockProducer logs events instead of writing to a broker. Wired when
// KAFKA_MOCK_MODE is set, so local runs don't need Kafka.
type MockProducer struct {
	Logger *logger.Logger
}

func (p *MockProducer) PublishTicketBooked(ticket models.Ticket) error {
	p.Logger.LogKafka("MOCK", "railbooking.tickets", models.EventTicketBooked+" "+ticket.PNR)
	return nil
}

func (p *MockProducer) PublishTicketUpdated(ticket models.Ticket) error {
	p.Logger.LogKafka("MOCK", "railbooking.tickets", models.EventTicketUpdated+" "+ticket.PNR)
	return nil
}

func (p *MockProducer) PublishTicketCancelled(ticket models.Ticket) error {
	p.Logger.LogKafka("MOCK", "railbooking.tickets", models.EventTicketCancelled+" "+ticket.PNR)
	return nil
}
