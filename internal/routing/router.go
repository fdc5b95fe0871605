package routing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/events"
	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/providers"
	"github.com/alex-user-go/eywa/internal/registry"
)

// Operation names a routed provider operation.
type Operation string

const (
	OpSearch       Operation = "search"
	OpAvailability Operation = "availability"
	OpBook         Operation = "book"
	OpRetrieve     Operation = "retrieve"
	OpCancel       Operation = "cancel"
	OpModify       Operation = "modify"
)

// Hints are the request fields routing may look at.
type Hints struct {
	Destination string
	PropertyID  string
	BookingRef  string
}

// Rule sends destinations containing Pattern (case-insensitive) to Provider.
type Rule struct {
	Pattern  string
	Provider providers.ID
}

// Config is the static routing table.
type Config struct {
	Default      providers.ID
	Destinations []Rule
	Properties   map[string]providers.ID
}

type matcher struct {
	providers.BookingMatcher
	provider providers.ID
}

// Router picks the provider serving each request and dispatches to it.
type Router struct {
	registry  *registry.Registry
	publisher events.Publisher
	metrics   *obs.Metrics
	logger    *zap.Logger

	mu         sync.RWMutex
	def        providers.ID
	rules      []Rule
	properties map[string]providers.ID
	providers  map[providers.ID]providers.Provider
	matchers   []matcher
}

// New creates a Router from cfg. Providers are wired with Add.
func New(cfg Config, reg *registry.Registry, publisher events.Publisher, metrics *obs.Metrics, logger *zap.Logger) *Router {
	def := cfg.Default
	if def == "" {
		def = providers.Reference
	}

	rules := make([]Rule, 0, len(cfg.Destinations))
	for _, rule := range cfg.Destinations {
		rules = append(rules, Rule{Pattern: strings.ToLower(rule.Pattern), Provider: rule.Provider})
	}

	properties := make(map[string]providers.ID, len(cfg.Properties))
	for id, p := range cfg.Properties {
		properties[id] = p
	}

	return &Router{
		registry:   reg,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		def:        def,
		rules:      rules,
		properties: properties,
		providers:  make(map[providers.ID]providers.Provider),
	}
}

// Add wires a provider and its booking matchers.
func (r *Router) Add(p providers.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[p.ID()] = p
	for _, m := range p.BookingMatchers() {
		r.matchers = append(r.matchers, matcher{BookingMatcher: m, provider: p.ID()})
	}
	sort.SliceStable(r.matchers, func(i, j int) bool {
		return r.matchers[i].Priority > r.matchers[j].Priority
	})
}

// Assign routes every request for propertyID to provider.
func (r *Router) Assign(propertyID string, provider providers.ID) {
	r.mu.Lock()
	r.properties[propertyID] = provider
	r.mu.Unlock()
}

// RegisterProperty records prop in the registry and assigns it to its provider.
func (r *Router) RegisterProperty(prop registry.Property) {
	r.registry.Register(prop)
	if prop.Provider != "" {
		r.Assign(prop.ID, prop.Provider)
	}
	r.logger.Info("property registered",
		zap.String("property_id", prop.ID),
		zap.String("provider", string(prop.Provider)))
}

// Route resolves the provider for op. It never fails: without a match it
// returns the default.
func (r *Router) Route(op Operation, h Hints) providers.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h.PropertyID != "" {
		if id, ok := r.properties[h.PropertyID]; ok {
			return id
		}
		if prop, ok := r.registry.Lookup(h.PropertyID); ok && prop.Provider != "" {
			return prop.Provider
		}
	}

	if dest := strings.ToLower(strings.TrimSpace(h.Destination)); dest != "" {
		for _, rule := range r.rules {
			if strings.Contains(dest, rule.Pattern) {
				return rule.Provider
			}
		}
	}

	if h.BookingRef != "" {
		switch op {
		case OpRetrieve, OpCancel, OpModify:
			for _, m := range r.matchers {
				if m.Match(h.BookingRef) {
					return m.provider
				}
			}
		}
	}

	return r.def
}

// resolve returns the wired provider for op, falling back to the default.
func (r *Router) resolve(op Operation, h Hints) (providers.Provider, error) {
	id := r.Route(op, h)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.providers[id]; ok {
		return p, nil
	}
	if id != r.def {
		r.logger.Warn("routed provider is not wired, using default",
			zap.String("provider", string(id)),
			zap.String("default", string(r.def)))
	}
	if p, ok := r.providers[r.def]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", providers.ErrProviderUnavailable, id)
}

func dispatch[T any](ctx context.Context, r *Router, op Operation, h Hints, fn func(context.Context, providers.Provider) (T, error)) (T, providers.ID, error) {
	var zero T

	p, err := r.resolve(op, h)
	if err != nil {
		r.logger.Error("no provider available", zap.String("operation", string(op)), zap.Error(err))
		return zero, "", hotel.NewError(hotel.CodeInternalError, err.Error())
	}
	id := p.ID()

	ctx, span := obs.StartSpan(ctx, "router."+string(op),
		attribute.String("provider", string(id)),
		attribute.String("property_id", h.PropertyID))
	defer span.End()

	result, err := fn(ctx, p)
	if err != nil {
		herr, ok := hotel.AsError(err)
		if !ok {
			herr = hotel.NewError(hotel.CodeProviderError, err.Error())
		}
		span.SetStatus(codes.Error, herr.Message)
		r.metrics.IncProviderRequest(string(id), string(op), string(herr.Code))
		r.logger.Warn("provider operation failed",
			zap.String("provider", string(id)),
			zap.String("operation", string(op)),
			zap.String("code", string(herr.Code)),
			zap.Error(err))
		return zero, id, herr
	}

	r.metrics.IncProviderRequest(string(id), string(op), "ok")
	return result, id, nil
}

// publish emits a booking event. Failures are logged only.
func (r *Router) publish(ctx context.Context, event events.BookingEvent) {
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.metrics.IncEvent(event.EventType, "error")
		r.logger.Error("failed to publish booking event",
			zap.String("event_type", event.EventType),
			zap.String("booking_id", event.BookingID),
			zap.Error(err))
		return
	}
	r.metrics.IncEvent(event.EventType, "ok")
}

// Search routes by destination.
func (r *Router) Search(ctx context.Context, params hotel.SearchParams) (*hotel.SearchResult, error) {
	res, _, err := dispatch(ctx, r, OpSearch, Hints{Destination: params.Destination},
		func(ctx context.Context, p providers.Provider) (*hotel.SearchResult, error) {
			return p.Search(ctx, params)
		})
	return res, err
}

// Availability routes by property.
func (r *Router) Availability(ctx context.Context, params hotel.AvailabilityParams) (*hotel.AvailabilityResult, error) {
	res, _, err := dispatch(ctx, r, OpAvailability, Hints{PropertyID: params.PropertyID},
		func(ctx context.Context, p providers.Provider) (*hotel.AvailabilityResult, error) {
			return p.Availability(ctx, params)
		})
	return res, err
}

// Book routes by property and announces the new booking.
func (r *Router) Book(ctx context.Context, params hotel.BookingParams) (*hotel.Booking, error) {
	booking, id, err := dispatch(ctx, r, OpBook, Hints{PropertyID: params.PropertyID},
		func(ctx context.Context, p providers.Provider) (*hotel.Booking, error) {
			return p.Book(ctx, params)
		})
	if err != nil {
		return nil, err
	}
	r.publish(ctx, events.NewBookingEvent(events.EventTypeBookingCreated, booking.BookingID, id, params.PropertyID, booking.Status))
	return booking, nil
}

// Retrieve routes by property, then by booking reference format.
func (r *Router) Retrieve(ctx context.Context, params hotel.RetrieveParams) (*hotel.Booking, error) {
	res, _, err := dispatch(ctx, r, OpRetrieve, Hints{PropertyID: params.PropertyID, BookingRef: params.Reference()},
		func(ctx context.Context, p providers.Provider) (*hotel.Booking, error) {
			return p.Retrieve(ctx, params)
		})
	return res, err
}

// Cancel routes like Retrieve and announces the cancellation.
func (r *Router) Cancel(ctx context.Context, params hotel.CancelParams) (*hotel.CancellationResult, error) {
	res, id, err := dispatch(ctx, r, OpCancel, Hints{PropertyID: params.PropertyID, BookingRef: params.BookingID},
		func(ctx context.Context, p providers.Provider) (*hotel.CancellationResult, error) {
			return p.Cancel(ctx, params)
		})
	if err != nil {
		return nil, err
	}
	r.publish(ctx, events.NewBookingEvent(events.EventTypeBookingCancelled, res.BookingID, id, params.PropertyID, res.Status))
	return res, nil
}

// Modify routes like Retrieve and announces the modification.
func (r *Router) Modify(ctx context.Context, params hotel.ModifyParams) (*hotel.ModificationResult, error) {
	res, id, err := dispatch(ctx, r, OpModify, Hints{PropertyID: params.PropertyID, BookingRef: params.BookingID},
		func(ctx context.Context, p providers.Provider) (*hotel.ModificationResult, error) {
			return p.Modify(ctx, params)
		})
	if err != nil {
		return nil, err
	}
	r.publish(ctx, events.NewBookingEvent(events.EventTypeBookingModified, res.BookingID, id, params.PropertyID, res.Status))
	return res, nil
}
