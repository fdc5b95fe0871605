package hotelrunner

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/providers"
	"github.com/alex-user-go/eywa/internal/registry"
)

const defaultSearchConcurrency = 4

// bookingRef is the HotelRunner reservation number format.
var bookingRef = regexp.MustCompile(`^R\d{9}$`)

// RoomCatalog caches room catalogs per property id.
type RoomCatalog interface {
	GetOrFetch(ctx context.Context, key string, fetch func(context.Context) ([]Room, error)) ([]Room, bool, error)
}

// Provider serves registered HotelRunner properties.
// HotelRunner is a channel manager: it cannot originate bookings.
type Provider struct {
	client      *Client
	registry    *registry.Registry
	rooms       RoomCatalog
	metrics     *obs.Metrics
	logger      *zap.Logger
	concurrency int
}

// New creates a new Provider.
func New(client *Client, reg *registry.Registry, rooms RoomCatalog, metrics *obs.Metrics, logger *zap.Logger) *Provider {
	return &Provider{
		client:      client,
		registry:    reg,
		rooms:       rooms,
		metrics:     metrics,
		logger:      logger,
		concurrency: defaultSearchConcurrency,
	}
}

// ID returns the provider identity.
func (p *Provider) ID() providers.ID {
	return providers.HotelRunner
}

// BookingMatchers recognises HotelRunner reservation numbers.
func (p *Provider) BookingMatchers() []providers.BookingMatcher {
	return []providers.BookingMatcher{{Pattern: bookingRef, Priority: 10}}
}

func credentials(prop registry.Property) Credentials {
	return Credentials{Token: prop.Token, AccountID: prop.AccountID}
}

// catalog returns the cached room catalog of a property.
func (p *Provider) catalog(ctx context.Context, prop registry.Property) ([]Room, error) {
	rooms, hit, err := p.rooms.GetOrFetch(ctx, prop.ID, func(ctx context.Context) ([]Room, error) {
		return p.client.Rooms(ctx, credentials(prop))
	})
	if err == nil {
		p.metrics.IncCacheLookup("hotelrunner_rooms", hit)
	}
	return rooms, err
}

func (p *Provider) lookup(propertyID string) (registry.Property, bool) {
	prop, ok := p.registry.Lookup(propertyID)
	if !ok || prop.Provider != providers.HotelRunner {
		return registry.Property{}, false
	}
	return prop, true
}

// Search matches registered properties whose city, country or name contains
// the destination. Properties whose catalog cannot be fetched are skipped.
func (p *Provider) Search(ctx context.Context, params hotel.SearchParams) (*hotel.SearchResult, error) {
	stay, err := hotel.Stay(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}

	dest := strings.ToLower(strings.TrimSpace(params.Destination))
	var matched []registry.Property
	for _, prop := range p.registry.ListByProvider(providers.HotelRunner) {
		if strings.Contains(strings.ToLower(prop.Location.City), dest) ||
			strings.Contains(strings.ToLower(prop.Location.Country), dest) ||
			strings.Contains(strings.ToLower(prop.Name), dest) {
			matched = append(matched, prop)
		}
	}

	summaries := make([]*hotel.PropertySummary, len(matched))
	wp := pool.New().WithMaxGoroutines(p.concurrency)
	for i, prop := range matched {
		i, prop := i, prop
		wp.Go(func() {
			rooms, err := p.catalog(ctx, prop)
			if err != nil {
				p.logger.Error("failed to fetch rooms",
					zap.String("property_id", prop.ID),
					zap.Error(err))
				return
			}
			sellable := Sellable(rooms)
			if len(sellable) == 0 {
				return
			}
			summary := MapSummary(prop, sellable[0], stay.Nights)
			summaries[i] = &summary
		})
	}
	wp.Wait()

	results := make([]hotel.PropertySummary, 0, len(summaries))
	for _, s := range summaries {
		if s != nil {
			results = append(results, *s)
		}
	}
	total := len(results)
	results = paginate(results, params.Offset, params.Limit)

	return &hotel.SearchResult{
		Status:       hotel.StatusSuccess,
		SearchID:     "hr_" + uuid.NewString()[:8],
		Destination:  params.Destination,
		Dates:        stay,
		TotalResults: total,
		Results:      results,
	}, nil
}

func paginate(results []hotel.PropertySummary, offset, limit int) []hotel.PropertySummary {
	if offset >= len(results) {
		return []hotel.PropertySummary{}
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// Availability lists the sellable rooms of a registered property.
func (p *Provider) Availability(ctx context.Context, params hotel.AvailabilityParams) (*hotel.AvailabilityResult, error) {
	prop, ok := p.lookup(params.PropertyID)
	if !ok {
		return nil, hotel.Errorf(hotel.CodePropertyNotFound, "Property not found: %s", params.PropertyID)
	}

	stay, err := hotel.Stay(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}

	rooms, err := p.catalog(ctx, prop)
	if err != nil {
		return nil, supplierError(err)
	}

	currency := params.Currency
	if currency == "" {
		currency = prop.Currency
	}

	sellable := Sellable(rooms)
	available := make([]hotel.Room, 0, len(sellable))
	for _, r := range sellable {
		available = append(available, MapRoom(r, stay.Nights, currency))
	}

	return &hotel.AvailabilityResult{
		Status:         hotel.StatusSuccess,
		PropertyID:     params.PropertyID,
		Property:       MapProperty(prop),
		Dates:          stay,
		RoomsAvailable: available,
	}, nil
}

// Book always fails: bookings reach HotelRunner through connected channels.
func (p *Provider) Book(_ context.Context, _ hotel.BookingParams) (*hotel.Booking, error) {
	return nil, hotel.NewError(hotel.CodeProviderError,
		"HotelRunner does not support direct booking creation. Bookings must be made through connected OTA channels or the property's direct booking engine.").
		WithSuggestion(hotel.Suggestion{
			Action: "Use the property's direct booking URL",
			Tool:   "hotel/availability",
			Params: map[string]any{"includeBookingUrl": true},
		})
}

// Retrieve looks a reservation up by number on the given property, or on
// every registered HotelRunner property.
func (p *Provider) Retrieve(ctx context.Context, params hotel.RetrieveParams) (*hotel.Booking, error) {
	ref := params.Reference()

	var candidates []registry.Property
	if params.PropertyID != "" {
		if prop, ok := p.lookup(params.PropertyID); ok {
			candidates = append(candidates, prop)
		}
	} else {
		candidates = p.registry.ListByProvider(providers.HotelRunner)
	}

	undelivered := false
	var lastErr error
	for _, prop := range candidates {
		reservations, err := p.client.Reservations(ctx, credentials(prop), ReservationFilter{
			ReservationNumber: ref,
			Undelivered:       &undelivered,
		})
		if err != nil {
			p.logger.Error("failed to search reservations",
				zap.String("property_id", prop.ID),
				zap.String("reservation", ref),
				zap.Error(err))
			lastErr = err
			continue
		}
		if len(reservations) == 0 {
			continue
		}

		booking, err := MapReservation(reservations[0], prop)
		if err != nil {
			return nil, hotel.Errorf(hotel.CodeProviderError, "HotelRunner returned an unusable reservation: %v", err)
		}
		return &booking, nil
	}

	// Not found is only certain when every property answered.
	if lastErr != nil {
		return nil, supplierError(lastErr)
	}
	return nil, hotel.Errorf(hotel.CodeBookingNotFound, "Booking not found: %s", ref)
}

// Cancel is not available through the HotelRunner apps API.
func (p *Provider) Cancel(_ context.Context, params hotel.CancelParams) (*hotel.CancellationResult, error) {
	if params.PropertyID != "" {
		if _, ok := p.lookup(params.PropertyID); !ok {
			return nil, hotel.Errorf(hotel.CodePropertyNotFound, "Property not found: %s", params.PropertyID)
		}
	}
	return nil, hotel.NewError(hotel.CodeProviderError, "Cancellation via HotelRunner API is not supported").
		WithSuggestion(hotel.Suggestion{
			Action: "Check the booking and cancel it through the channel it was made on",
			Tool:   "hotel/booking",
			Params: map[string]any{"booking_id": params.BookingID},
		})
}

// Modify is not available through the HotelRunner apps API.
func (p *Provider) Modify(_ context.Context, params hotel.ModifyParams) (*hotel.ModificationResult, error) {
	if params.PropertyID != "" {
		if _, ok := p.lookup(params.PropertyID); !ok {
			return nil, hotel.Errorf(hotel.CodePropertyNotFound, "Property not found: %s", params.PropertyID)
		}
	}
	return nil, hotel.NewError(hotel.CodeProviderError, "Modification via HotelRunner API is not supported").
		WithSuggestion(hotel.Suggestion{
			Action: "Check the booking and modify it through the channel it was made on",
			Tool:   "hotel/booking",
			Params: map[string]any{"booking_id": params.BookingID},
		})
}

// supplierError converts a client failure into a PROVIDER_ERROR.
func supplierError(err error) *hotel.Error {
	herr := hotel.Errorf(hotel.CodeProviderError, "HotelRunner API error: %v", err)

	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrRateLimited):
		herr.WithDetail("rateLimited", true)
	case errors.As(err, &statusErr):
		herr.WithDetail("statusCode", statusErr.StatusCode).WithDetail("body", statusErr.Body)
	}
	return herr
}
