package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_PublishAppointmentFinalized(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "appointments")

	event := AppointmentFinalized{
		AppointmentID:   42,
		DoctorID:        3,
		PatientID:       ptr.Ptr(int64(7)),
		AppointmentDate: "2025-01-10",
		AppointmentTime: "09:00",
		Price:           "1.70",
		CouponApplied:   true,
		OccurredAt:      time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishAppointmentFinalized(context.Background(), event))

	assert.Equal(t, "appointments", ch.exchange)
	assert.Equal(t, "appointment.finalized", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var decoded AppointmentFinalized
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, int64(42), decoded.AppointmentID)
	assert.Equal(t, "1.70", decoded.Price)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewPublisherWithChannel(ch, "appointments")

	err := p.PublishAppointmentFinalized(context.Background(), AppointmentFinalized{AppointmentID: 1})
	assert.ErrorIs(t, err, ErrPublish)
}
