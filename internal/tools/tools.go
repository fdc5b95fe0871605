// Package tools exposes the hotel operations as named tool calls with
// loosely typed arguments and JSON text results.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/obs"
)

// Tool names.
const (
	Search       = "hotel/search"
	Availability = "hotel/availability"
	Book         = "hotel/book"
	Retrieve     = "hotel/booking"
	Cancel       = "hotel/cancel"
	Modify       = "hotel/modify"
)

// Service performs the hotel operations. It is satisfied by *routing.Router.
type Service interface {
	Search(ctx context.Context, params hotel.SearchParams) (*hotel.SearchResult, error)
	Availability(ctx context.Context, params hotel.AvailabilityParams) (*hotel.AvailabilityResult, error)
	Book(ctx context.Context, params hotel.BookingParams) (*hotel.Booking, error)
	Retrieve(ctx context.Context, params hotel.RetrieveParams) (*hotel.Booking, error)
	Cancel(ctx context.Context, params hotel.CancelParams) (*hotel.CancellationResult, error)
	Modify(ctx context.Context, params hotel.ModifyParams) (*hotel.ModificationResult, error)
}

// Result is the outcome of a tool call. Text is always a JSON document.
type Result struct {
	Text    string
	IsError bool
}

type handlerFunc func(ctx context.Context, args Args) (any, error)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRejectPastCheckIn makes check-in dates before today invalid.
func WithRejectPastCheckIn(reject bool) Option {
	return func(d *Dispatcher) { d.rejectPast = reject }
}

// WithClock overrides the clock used for the past check-in rule.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher validates tool arguments and forwards them to the Service.
type Dispatcher struct {
	svc        Service
	metrics    *obs.Metrics
	logger     *zap.Logger
	rejectPast bool
	now        func() time.Time
	handlers   map[string]handlerFunc
}

// NewDispatcher creates a Dispatcher. metrics may be nil.
func NewDispatcher(svc Service, metrics *obs.Metrics, logger *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		svc:     svc,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.handlers = map[string]handlerFunc{
		Search:       d.search,
		Availability: d.availability,
		Book:         d.book,
		Retrieve:     d.retrieve,
		Cancel:       d.cancel,
		Modify:       d.modify,
	}
	return d
}

// Call runs the named tool. It never returns a Go error: failures are
// encoded in the result.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (res Result) {
	start := time.Now()
	label := name
	if _, ok := d.handlers[name]; !ok {
		label = "unknown"
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool panicked",
				zap.String("tool", name),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			res = failure(hotel.Errorf(hotel.CodeInternalError, "%v", r))
		}
		if d.metrics != nil {
			status := "ok"
			if res.IsError {
				status = "error"
			}
			d.metrics.ObserveToolCall(label, status, time.Since(start))
		}
	}()

	h, ok := d.handlers[name]
	if !ok {
		return failure(hotel.Errorf(hotel.CodeUnknownTool, "Unknown tool: %s", name))
	}

	out, err := h(ctx, Args(args))
	if err != nil {
		herr, ok := hotel.AsError(err)
		if !ok {
			herr = hotel.NewError(hotel.CodeInternalError, err.Error())
		}
		d.logger.Info("tool call failed",
			zap.String("tool", name),
			zap.String("code", string(herr.Code)),
			zap.String("message", herr.Message),
		)
		return failure(herr)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return failure(hotel.Errorf(hotel.CodeInternalError, "encode result: %v", err))
	}
	return Result{Text: string(data)}
}

func failure(e *hotel.Error) Result {
	data, err := json.Marshal(hotel.Envelope(e))
	if err != nil {
		data = []byte(fmt.Sprintf(`{"status":"error","error":{"code":%q,"message":"encode error"}}`, hotel.CodeInternalError))
	}
	return Result{Text: string(data), IsError: true}
}
