package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/providers"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, zap.NewNop())

	event := NewBookingEvent(EventTypeBookingCreated, "EYW-2026-a1b2c3d4", providers.Reference, "prop_grand_hyatt_ist", hotel.BookingConfirmed)
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "EYW-2026-a1b2c3d4", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventTypeBookingCreated, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded["event_id"])
	assert.Equal(t, "BOOKING_CREATED", decoded["event_type"])
	assert.Equal(t, "mock", decoded["provider"])
	assert.Equal(t, "confirmed", decoded["status"])
	assert.Equal(t, "prop_grand_hyatt_ist", decoded["property_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	cause := errors.New("broker down")
	p := newKafkaPublisher(&fakeWriter{err: cause}, zap.NewNop())

	err := p.Publish(context.Background(), NewBookingEvent(EventTypeBookingCancelled, "R123456789", providers.HotelRunner, "", hotel.BookingCancelled))
	assert.ErrorIs(t, err, cause)
}

func TestNewBookingEvent(t *testing.T) {
	a := NewBookingEvent(EventTypeBookingModified, "EYW-1", providers.Reference, "", hotel.BookingModified)
	b := NewBookingEvent(EventTypeBookingModified, "EYW-1", providers.Reference, "", hotel.BookingModified)

	assert.NotEqual(t, a.EventID, b.EventID)
	assert.False(t, a.Timestamp.IsZero())
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), a))
}
