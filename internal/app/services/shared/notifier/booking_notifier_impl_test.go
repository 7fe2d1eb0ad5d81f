package notifier

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	queue    string
	messages []amqp091.Publishing
	err      error
}

func (p *recordingPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if p.err != nil {
		return p.err
	}
	p.queue = key
	p.messages = append(p.messages, msg)
	return nil
}

var testSlot = models.Slot{Date: "2024-01-02", Time: "10:30", Label: "Tomorrow, 10:30 AM"}

func testReceipt() *models.BookingReceipt {
	return &models.BookingReceipt{
		PlaceName: "Community Mental Health Clinic",
		Slot:      "Tomorrow, 10:30 AM",
		Location:  models.Location{ID: "2", Name: "Community Mental Health Clinic", Lat: 43.6510, Lng: -79.3470},
	}
}

func TestBookingConfirmedPublishesPersistentJSON(t *testing.T) {
	publisher := &recordingPublisher{}
	n := NewBookingNotifierWithPublisher(zap.NewNop(), publisher, "carerouter.bookings").(*bookingNotifier)
	n.Now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "CRW_1")

	require.NoError(t, n.BookingConfirmed(ctx, "client-1", testReceipt(), testSlot))

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "carerouter.bookings", publisher.queue)
	message := publisher.messages[0]
	assert.Equal(t, amqp091.Persistent, message.DeliveryMode)
	assert.Equal(t, constvars.MIMEApplicationJSON, message.ContentType)
	assert.Equal(t, "CRW_1", message.CorrelationId)

	var body requests.BookingConfirmedMessage
	require.NoError(t, json.Unmarshal(message.Body, &body))
	assert.Equal(t, requests.BookingConfirmedMessage{
		Event:        "booking.confirmed",
		ClientID:     "client-1",
		LocationID:   "2",
		LocationName: "Community Mental Health Clinic",
		Lat:          43.6510,
		Lng:          -79.3470,
		Date:         "2024-01-02",
		Time:         "10:30",
		Label:        "Tomorrow, 10:30 AM",
		ConfirmedAt:  "2024-01-01T12:00:00Z",
	}, body)
}

func TestBookingConfirmedPublishFailure(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("channel closed")}
	n := NewBookingNotifierWithPublisher(zap.NewNop(), publisher, "carerouter.bookings")

	err := n.BookingConfirmed(context.Background(), "client-1", testReceipt(), testSlot)

	require.Error(t, err)
	assert.Equal(t, constvars.StatusInternalServerError, exceptions.StatusCode(err))
}
