package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/providers/hotelrunner"
)

var errSupplierUnavailable = errors.New("supplier unavailable")

// account is one property as the supplier knows it.
type account struct {
	Token        string
	Rooms        []hotelrunner.Room
	Reservations []hotelrunner.Reservation
}

// Supplier is a HotelRunner-compatible fake with random latency and an
// optional failure rate.
type Supplier struct {
	mu          sync.Mutex
	rng         *rand.Rand
	accounts    map[string]account
	baseLatency time.Duration
	jitter      time.Duration
	failureRate float64
	logger      *zap.Logger
}

// NewSupplier creates a Supplier serving accounts keyed by hr_id.
func NewSupplier(accounts map[string]account, baseLatency, jitter time.Duration, failureRate float64, logger *zap.Logger) *Supplier {
	return &Supplier{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		accounts:    accounts,
		baseLatency: baseLatency,
		jitter:      jitter,
		failureRate: failureRate,
		logger:      logger,
	}
}

// simulate waits for the configured latency and may fail.
func (s *Supplier) simulate(ctx context.Context) error {
	s.mu.Lock()
	latency := s.baseLatency
	if s.jitter > 0 {
		latency += time.Duration(s.rng.Int63n(int64(s.jitter)))
	}
	fail := s.rng.Float64() < s.failureRate
	s.mu.Unlock()

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return context.Cause(ctx)
	}

	if fail {
		return errSupplierUnavailable
	}
	return nil
}

func (s *Supplier) authorize(r *http.Request) (account, bool) {
	q := r.URL.Query()
	acc, ok := s.accounts[q.Get("hr_id")]
	if !ok || acc.Token != q.Get("token") {
		return account{}, false
	}
	return acc, true
}

// ServeHTTP handles HTTP requests for the supplier API.
func (s *Supplier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"}, s.logger)
		return
	}

	acc, ok := s.authorize(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token or hr_id"}, s.logger)
		return
	}

	if err := s.simulate(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()}, s.logger)
		return
	}

	switch r.URL.Path {
	case "/rooms":
		writeJSON(w, http.StatusOK, map[string]any{"rooms": acc.Rooms}, s.logger)
	case "/reservations":
		writeJSON(w, http.StatusOK, map[string]any{"reservations": s.reservations(acc, r)}, s.logger)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"}, s.logger)
	}
}

// reservations applies the reservation_number and per_page filters.
func (s *Supplier) reservations(acc account, r *http.Request) []hotelrunner.Reservation {
	q := r.URL.Query()
	number := q.Get("reservation_number")
	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || perPage <= 0 {
		perPage = 50
	}

	out := make([]hotelrunner.Reservation, 0, len(acc.Reservations))
	for _, res := range acc.Reservations {
		if number != "" && res.HRNumber != number {
			continue
		}
		out = append(out, res)
		if len(out) == perPage {
			break
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
