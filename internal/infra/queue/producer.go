package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xcabral/leaddesk/internal/report"
)

// ReportEmailPayload carries everything the worker needs. The report
// data is fetched at request time, while the caller still holds an
// authenticated session; the worker never talks to the upstream API.
type ReportEmailPayload struct {
	To          string      `json:"to"`
	RequestedBy string      `json:"requested_by"`
	Report      report.Data `json:"report"`
}

type ProducerInterface interface {
	PublishReportEmail(ctx context.Context, payload ReportEmailPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishReportEmail(ctx context.Context, payload ReportEmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives broker restarts
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
