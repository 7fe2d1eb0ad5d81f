package notifier

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/drivers/messaging"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher is the part of *amqp091.Channel the notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type bookingNotifier struct {
	Log     *zap.Logger
	Channel Publisher
	Queue   string
	Now     func() time.Time
}

// NewBookingNotifier publishes to the durable booking queue on its own channel.
func NewBookingNotifier(logger *zap.Logger, rabbitMQConnection *amqp091.Connection, queue string) (contracts.BookingNotifier, error) {
	channel, err := messaging.OpenQueue(rabbitMQConnection, queue)
	if err != nil {
		return nil, err
	}
	return NewBookingNotifierWithPublisher(logger, channel, queue), nil
}

func NewBookingNotifierWithPublisher(logger *zap.Logger, publisher Publisher, queue string) contracts.BookingNotifier {
	return &bookingNotifier{
		Log:     logger,
		Channel: publisher,
		Queue:   queue,
		Now:     time.Now,
	}
}

func (s *bookingNotifier) BookingConfirmed(ctx context.Context, clientID string, receipt *models.BookingReceipt, slot models.Slot) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(requests.BookingConfirmedMessage{
		Event:        constvars.BookingConfirmedEvent,
		ClientID:     clientID,
		LocationID:   receipt.Location.ID,
		LocationName: receipt.PlaceName,
		Lat:          receipt.Location.Lat,
		Lng:          receipt.Location.Lng,
		Date:         slot.Date,
		Time:         slot.Time,
		Label:        receipt.Slot,
		ConfirmedAt:  s.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
		"event":            constvars.BookingConfirmedEvent,
	}

	message := amqp091.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp091.Persistent,
		Priority:      0,
		Headers:       headers,
		CorrelationId: requestID,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err)
	}

	s.Log.Info("bookingNotifier.BookingConfirmed published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLocationIDKey, receipt.Location.ID),
		zap.String("queue", s.Queue),
	)
	return nil
}
