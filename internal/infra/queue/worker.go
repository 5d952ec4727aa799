package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xcabral/leaddesk/internal/report"
)

// ReportMailer delivers a rendered report to a recipient.
type ReportMailer interface {
	SendReport(to string, data report.Data, csv []byte) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  ReportMailer
}

func NewWorker(ch *amqp.Channel, mailer ReportMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack (manual is safer)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ReportEmailPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it lands in the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] report email job: %s report for %s", payload.Report.Kind, payload.To)

			if err := w.process(payload); err != nil {
				log.Printf("❌ [WORKER] failed to send report email: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] %s report emailed to %s", payload.Report.Kind, payload.To)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload ReportEmailPayload) error {
	csv, err := report.RenderCSV(payload.Report)
	if err != nil {
		return err
	}
	return w.Mailer.SendReport(payload.To, payload.Report, csv)
}
