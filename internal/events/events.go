package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/providers"
)

// Booking lifecycle event types.
const (
	EventTypeBookingCreated   = "BOOKING_CREATED"
	EventTypeBookingCancelled = "BOOKING_CANCELLED"
	EventTypeBookingModified  = "BOOKING_MODIFIED"
)

// BookingEvent is published after a booking changes state at a provider.
type BookingEvent struct {
	EventID    string              `json:"event_id"`
	EventType  string              `json:"event_type"`
	Timestamp  time.Time           `json:"timestamp"`
	BookingID  string              `json:"booking_id"`
	Provider   providers.ID        `json:"provider"`
	PropertyID string              `json:"property_id,omitempty"`
	Status     hotel.BookingStatus `json:"status"`
}

// NewBookingEvent stamps a new event with a fresh id and the current time.
func NewBookingEvent(eventType, bookingID string, provider providers.ID, propertyID string, status hotel.BookingStatus) BookingEvent {
	return BookingEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
		BookingID:  bookingID,
		Provider:   provider,
		PropertyID: propertyID,
		Status:     status,
	}
}

// Publisher delivers booking events.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
