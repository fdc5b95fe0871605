package providers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alex-user-go/eywa/internal/hotel"
)

// ID identifies a supplier backend.
type ID string

const (
	// Reference is the deterministic in-process supplier.
	Reference ID = "mock"
	// HotelRunner is the HotelRunner channel manager.
	HotelRunner ID = "hotelrunner"
)

// ParseID parses a configured provider name.
func ParseID(s string) (ID, error) {
	switch id := ID(strings.ToLower(strings.TrimSpace(s))); id {
	case Reference, HotelRunner:
		return id, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

// Provider is one supplier adapter. Every provider implements the full
// operation set; operations it cannot perform return a PROVIDER_ERROR with
// suggestions.
type Provider interface {
	ID() ID
	Search(ctx context.Context, params hotel.SearchParams) (*hotel.SearchResult, error)
	Availability(ctx context.Context, params hotel.AvailabilityParams) (*hotel.AvailabilityResult, error)
	Book(ctx context.Context, params hotel.BookingParams) (*hotel.Booking, error)
	Retrieve(ctx context.Context, params hotel.RetrieveParams) (*hotel.Booking, error)
	Cancel(ctx context.Context, params hotel.CancelParams) (*hotel.CancellationResult, error)
	Modify(ctx context.Context, params hotel.ModifyParams) (*hotel.ModificationResult, error)
	// BookingMatchers recognise booking references issued by this provider.
	BookingMatchers() []BookingMatcher
}

// BookingMatcher recognises a booking reference format. Higher priority wins.
type BookingMatcher struct {
	Pattern  *regexp.Regexp
	Priority int
}

// Match reports whether ref has this matcher's format.
func (m BookingMatcher) Match(ref string) bool {
	return m.Pattern != nil && m.Pattern.MatchString(ref)
}

// ErrProviderUnavailable is returned when no provider is wired for a route.
var ErrProviderUnavailable = errors.New("provider unavailable")
