package notifier

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Channel подмножество методов *amqp.Channel, используемых паблишером
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует доменные события в topic exchange RabbitMQ
type Publisher struct {
	ch       Channel
	exchange string
}

// NewPublisher открывает канал и объявляет durable topic exchange
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrSetup, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrSetup, exchange, err)
	}

	return NewPublisherWithChannel(ch, exchange), nil
}

// NewPublisherWithChannel создает паблишер поверх уже открытого канала
func NewPublisherWithChannel(ch Channel, exchange string) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
	}
}

// PublishAppointmentFinalized публикует событие appointment.finalized
func (p *Publisher) PublishAppointmentFinalized(ctx context.Context, event AppointmentFinalized) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         domain.EventAppointmentFinalized,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, domain.EventAppointmentFinalized, false, false, msg); err != nil {
		return fmt.Errorf("%w: exchange=%s: %v", ErrPublish, p.exchange, err)
	}

	return nil
}

// Close закрывает канал
func (p *Publisher) Close() error {
	return p.ch.Close()
}

// Nop паблишер для окружений без RabbitMQ
type Nop struct{}

// PublishAppointmentFinalized ничего не делает
func (Nop) PublishAppointmentFinalized(context.Context, AppointmentFinalized) error {
	return nil
}

// Close ничего не делает
func (Nop) Close() error {
	return nil
}
