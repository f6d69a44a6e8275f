package notifications

import (
	"context"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

type deliveryOutcome int

const (
	outcomeAck deliveryOutcome = iota
	outcomeRequeue
	outcomeDrop
)

// EmailWorker drains the mailer queue and hands each message to SMTP.
// Messages are acked only after a successful send; undecodable ones are
// dropped and transport failures are requeued once.
type EmailWorker struct {
	log         *zap.Logger
	conn        *amqp091.Connection
	queue       string
	smtpService contracts.SMTPService
}

func NewEmailWorker(log *zap.Logger, conn *amqp091.Connection, queue string, smtpService contracts.SMTPService) *EmailWorker {
	return &EmailWorker{log: log, conn: conn, queue: queue, smtpService: smtpService}
}

// Start begins consuming in a goroutine and returns a stop function that
// waits for the in-flight message to finish.
func (w *EmailWorker) Start(ctx context.Context) (func(), error) {
	channel, err := w.conn.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := channel.QueueDeclare(w.queue, true, false, false, false, nil); err != nil {
		channel.Close()
		return nil, err
	}
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		return nil, err
	}

	deliveries, err := channel.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})

	w.log.Info("notifications.worker: started", zap.String(constvars.LoggingQueueNameKey, w.queue))

	go func() {
		defer close(stopped)
		for {
			select {
			case <-runCtx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					w.log.Warn("notifications.worker: delivery channel closed")
					return
				}
				w.settle(delivery, w.handle(runCtx, delivery.Body, delivery.Redelivered))
			}
		}
	}()

	return func() {
		cancel()
		<-stopped
		channel.Close()
	}, nil
}

func (w *EmailWorker) settle(delivery amqp091.Delivery, outcome deliveryOutcome) {
	var err error
	switch outcome {
	case outcomeAck:
		err = delivery.Ack(false)
	case outcomeRequeue:
		err = delivery.Nack(false, true)
	default:
		err = delivery.Nack(false, false)
	}
	if err != nil {
		w.log.Warn("notifications.worker: failed to settle delivery", zap.Error(err))
	}
}

func (w *EmailWorker) handle(ctx context.Context, body []byte, redelivered bool) deliveryOutcome {
	payload := new(requests.EmailPayload)
	if err := json.Unmarshal(body, payload); err != nil {
		w.log.Error("notifications.worker: dropping undecodable message", zap.Error(err))
		return outcomeDrop
	}
	if len(payload.To) == 0 {
		w.log.Error("notifications.worker: dropping message without recipients",
			zap.Int64(constvars.LoggingBookingIDKey, payload.BookingID),
		)
		return outcomeDrop
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := w.smtpService.SendEmail(sendCtx, payload); err != nil {
		w.log.Error("notifications.worker: send failed",
			zap.String("message_type", payload.Type),
			zap.Int64(constvars.LoggingBookingIDKey, payload.BookingID),
			zap.Bool("redelivered", redelivered),
			zap.Error(err),
		)
		if redelivered {
			return outcomeDrop
		}
		return outcomeRequeue
	}

	w.log.Info("notifications.worker: email sent",
		zap.String("message_type", payload.Type),
		zap.Int64(constvars.LoggingBookingIDKey, payload.BookingID),
	)
	return outcomeAck
}
