package routing_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/events"
	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/providers"
	"github.com/alex-user-go/eywa/internal/registry"
	"github.com/alex-user-go/eywa/internal/routing"
)

// stubProvider answers every operation with a canned result or err.
type stubProvider struct {
	id       providers.ID
	matchers []providers.BookingMatcher
	err      error
	calls    []string
}

func (s *stubProvider) ID() providers.ID { return s.id }

func (s *stubProvider) BookingMatchers() []providers.BookingMatcher { return s.matchers }

func (s *stubProvider) Search(_ context.Context, params hotel.SearchParams) (*hotel.SearchResult, error) {
	s.calls = append(s.calls, "search")
	if s.err != nil {
		return nil, s.err
	}
	return &hotel.SearchResult{Status: hotel.StatusSuccess, Destination: params.Destination}, nil
}

func (s *stubProvider) Availability(_ context.Context, params hotel.AvailabilityParams) (*hotel.AvailabilityResult, error) {
	s.calls = append(s.calls, "availability")
	if s.err != nil {
		return nil, s.err
	}
	return &hotel.AvailabilityResult{Status: hotel.StatusSuccess, PropertyID: params.PropertyID}, nil
}

func (s *stubProvider) Book(_ context.Context, params hotel.BookingParams) (*hotel.Booking, error) {
	s.calls = append(s.calls, "book")
	if s.err != nil {
		return nil, s.err
	}
	return &hotel.Booking{Status: hotel.BookingConfirmed, BookingID: "EYW-2026-00000001"}, nil
}

func (s *stubProvider) Retrieve(_ context.Context, params hotel.RetrieveParams) (*hotel.Booking, error) {
	s.calls = append(s.calls, "retrieve")
	if s.err != nil {
		return nil, s.err
	}
	return &hotel.Booking{Status: hotel.BookingConfirmed, BookingID: params.Reference()}, nil
}

func (s *stubProvider) Cancel(_ context.Context, params hotel.CancelParams) (*hotel.CancellationResult, error) {
	s.calls = append(s.calls, "cancel")
	if s.err != nil {
		return nil, s.err
	}
	return &hotel.CancellationResult{Status: hotel.BookingCancelled, BookingID: params.BookingID}, nil
}

func (s *stubProvider) Modify(_ context.Context, params hotel.ModifyParams) (*hotel.ModificationResult, error) {
	s.calls = append(s.calls, "modify")
	if s.err != nil {
		return nil, s.err
	}
	return &hotel.ModificationResult{Status: hotel.BookingModified, BookingID: params.BookingID}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func reference() *stubProvider {
	return &stubProvider{
		id:       providers.Reference,
		matchers: []providers.BookingMatcher{{Pattern: regexp.MustCompile(`^(EYW-|HY-)`), Priority: 0}},
	}
}

func hotelRunner() *stubProvider {
	return &stubProvider{
		id:       providers.HotelRunner,
		matchers: []providers.BookingMatcher{{Pattern: regexp.MustCompile(`^R\d{9}$`), Priority: 10}},
	}
}

func newRouter(cfg routing.Config, pub events.Publisher, ps ...providers.Provider) *routing.Router {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	r := routing.New(cfg, registry.New(), pub, obs.NewMetrics(prometheus.NewRegistry()), zap.NewNop())
	for _, p := range ps {
		r.Add(p)
	}
	return r
}

func TestRoute(t *testing.T) {
	cfg := routing.Config{
		Default: providers.Reference,
		Destinations: []routing.Rule{
			{Pattern: "Antalya", Provider: providers.HotelRunner},
			{Pattern: "ant", Provider: providers.Reference},
		},
		Properties: map[string]providers.ID{"prop_pera": providers.HotelRunner},
	}
	r := newRouter(cfg, nil, reference(), hotelRunner())

	tests := []struct {
		name  string
		op    routing.Operation
		hints routing.Hints
		want  providers.ID
	}{
		{name: "destination rule, case-insensitive", op: routing.OpSearch, hints: routing.Hints{Destination: "  ANTALYA, Turkey"}, want: providers.HotelRunner},
		{name: "first matching rule wins", op: routing.OpSearch, hints: routing.Hints{Destination: "Santorini"}, want: providers.Reference},
		{name: "no rule", op: routing.OpSearch, hints: routing.Hints{Destination: "Paris"}, want: providers.Reference},
		{name: "assigned property", op: routing.OpAvailability, hints: routing.Hints{PropertyID: "prop_pera"}, want: providers.HotelRunner},
		{name: "property beats destination", op: routing.OpSearch, hints: routing.Hints{PropertyID: "prop_pera", Destination: "Paris"}, want: providers.HotelRunner},
		{name: "unknown property", op: routing.OpAvailability, hints: routing.Hints{PropertyID: "nonexistent"}, want: providers.Reference},
		{name: "reservation number", op: routing.OpRetrieve, hints: routing.Hints{BookingRef: "R123456789"}, want: providers.HotelRunner},
		{name: "reference booking", op: routing.OpCancel, hints: routing.Hints{BookingRef: "EYW-2026-abc"}, want: providers.Reference},
		{name: "unrecognised reference", op: routing.OpModify, hints: routing.Hints{BookingRef: "XYZ"}, want: providers.Reference},
		{name: "matchers only apply to booking operations", op: routing.OpAvailability, hints: routing.Hints{BookingRef: "R123456789"}, want: providers.Reference},
		{name: "property beats matcher", op: routing.OpRetrieve, hints: routing.Hints{PropertyID: "prop_pera", BookingRef: "EYW-1"}, want: providers.HotelRunner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.op, tt.hints))
		})
	}
}

func TestRoute_MatcherPriority(t *testing.T) {
	greedy := &stubProvider{
		id:       providers.Reference,
		matchers: []providers.BookingMatcher{{Pattern: regexp.MustCompile(`.*`), Priority: 0}},
	}
	r := newRouter(routing.Config{}, nil, greedy, hotelRunner())

	assert.Equal(t, providers.HotelRunner, r.Route(routing.OpRetrieve, routing.Hints{BookingRef: "R123456789"}))
	assert.Equal(t, providers.Reference, r.Route(routing.OpRetrieve, routing.Hints{BookingRef: "R1"}))
}

func TestRegisterProperty(t *testing.T) {
	reg := registry.New()
	r := routing.New(routing.Config{
		Destinations: []routing.Rule{{Pattern: "istanbul", Provider: providers.Reference}},
	}, reg, events.NopPublisher{}, obs.NewMetrics(prometheus.NewRegistry()), zap.NewNop())

	r.RegisterProperty(registry.Property{ID: "prop_pera", Provider: providers.HotelRunner, Name: "Pera Palace"})

	_, ok := reg.Lookup("prop_pera")
	assert.True(t, ok)
	assert.Equal(t, providers.HotelRunner, r.Route(routing.OpSearch, routing.Hints{PropertyID: "prop_pera", Destination: "Istanbul"}))

	reg.Register(registry.Property{ID: "prop_direct", Provider: providers.HotelRunner})
	assert.Equal(t, providers.HotelRunner, r.Route(routing.OpAvailability, routing.Hints{PropertyID: "prop_direct"}))
}

func TestDispatch_FallsBackToDefault(t *testing.T) {
	ref := reference()
	r := newRouter(routing.Config{
		Properties: map[string]providers.ID{"prop_pera": providers.HotelRunner},
	}, nil, ref)

	res, err := r.Availability(context.Background(), hotel.AvailabilityParams{PropertyID: "prop_pera"})
	require.NoError(t, err)
	assert.Equal(t, "prop_pera", res.PropertyID)
	assert.Equal(t, []string{"availability"}, ref.calls)
}

func TestDispatch_NoProviderWired(t *testing.T) {
	r := newRouter(routing.Config{Default: providers.HotelRunner}, nil, reference())

	_, err := r.Search(context.Background(), hotel.SearchParams{Destination: "Istanbul"})
	herr, ok := hotel.AsError(err)
	require.True(t, ok)
	assert.Equal(t, hotel.CodeInternalError, herr.Code)
	assert.Contains(t, herr.Message, providers.ErrProviderUnavailable.Error())
}

func TestDispatch_WrapsProviderErrors(t *testing.T) {
	failing := reference()
	failing.err = errors.New("connection reset")
	r := newRouter(routing.Config{}, nil, failing)

	_, err := r.Search(context.Background(), hotel.SearchParams{Destination: "Istanbul"})
	herr, ok := hotel.AsError(err)
	require.True(t, ok)
	assert.Equal(t, hotel.CodeProviderError, herr.Code)
	assert.Contains(t, herr.Message, "connection reset")

	canonical := reference()
	canonical.err = hotel.NewError(hotel.CodeBookingNotFound, "Booking not found: EYW-1")
	r = newRouter(routing.Config{}, nil, canonical)

	_, err = r.Retrieve(context.Background(), hotel.RetrieveParams{BookingID: "EYW-1"})
	herr, ok = hotel.AsError(err)
	require.True(t, ok)
	assert.Equal(t, hotel.CodeBookingNotFound, herr.Code)
}

func TestBookingEvents(t *testing.T) {
	pub := &recordingPublisher{}
	r := newRouter(routing.Config{}, pub, reference(), hotelRunner())
	ctx := context.Background()

	_, err := r.Book(ctx, hotel.BookingParams{PropertyID: "prop_grand_hyatt_ist"})
	require.NoError(t, err)
	_, err = r.Cancel(ctx, hotel.CancelParams{BookingID: "EYW-2026-00000001"})
	require.NoError(t, err)
	_, err = r.Modify(ctx, hotel.ModifyParams{BookingID: "R123456789"})
	require.NoError(t, err)
	_, err = r.Retrieve(ctx, hotel.RetrieveParams{BookingID: "EYW-2026-00000001"})
	require.NoError(t, err)

	require.Len(t, pub.events, 3)
	assert.Equal(t, events.EventTypeBookingCreated, pub.events[0].EventType)
	assert.Equal(t, "prop_grand_hyatt_ist", pub.events[0].PropertyID)
	assert.Equal(t, providers.Reference, pub.events[0].Provider)
	assert.Equal(t, events.EventTypeBookingCancelled, pub.events[1].EventType)
	assert.Equal(t, hotel.BookingCancelled, pub.events[1].Status)
	assert.Equal(t, events.EventTypeBookingModified, pub.events[2].EventType)
	assert.Equal(t, providers.HotelRunner, pub.events[2].Provider)
}

func TestBookingEvents_PublishFailureIsNotReturned(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	r := newRouter(routing.Config{}, pub, reference())

	booking, err := r.Book(context.Background(), hotel.BookingParams{PropertyID: "prop_grand_hyatt_ist"})
	require.NoError(t, err)
	assert.Equal(t, "EYW-2026-00000001", booking.BookingID)
	assert.Len(t, pub.events, 1)
}

func TestBookingEvents_NotPublishedOnFailure(t *testing.T) {
	pub := &recordingPublisher{}
	failing := reference()
	failing.err = hotel.NewError(hotel.CodeRoomUnavailable, "sold out")
	r := newRouter(routing.Config{}, pub, failing)

	_, err := r.Book(context.Background(), hotel.BookingParams{PropertyID: "prop_grand_hyatt_ist"})
	require.Error(t, err)
	assert.Empty(t, pub.events)
}
