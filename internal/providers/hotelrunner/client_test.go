package hotelrunner_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/providers/hotelrunner"
	"github.com/alex-user-go/eywa/internal/ratelimit"
)

var creds = hotelrunner.Credentials{Token: "secret-token", AccountID: "123456"}

func newClient(t *testing.T, baseURL string, limits ratelimit.Limits) *hotelrunner.Client {
	t.Helper()
	metrics := obs.NewMetrics(prometheus.NewRegistry())
	return hotelrunner.NewClient(baseURL, 2*time.Second, ratelimit.New(limits), metrics, zap.NewNop())
}

func TestClient_AuthParamsCannotBeOverridden(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		assert.Equal(t, "/rooms", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"rooms":[]}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, ratelimit.HotelRunnerLimits)
	err := c.Do(context.Background(), "/rooms", creds, hotelrunner.RequestOptions{
		Query: url.Values{
			"token": {"attacker"},
			"hr_id": {"999"},
			"page":  {"2"},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"secret-token"}, got["token"])
	assert.Equal(t, []string{"123456"}, got["hr_id"])
	assert.Equal(t, "2", got.Get("page"))
}

func TestClient_RateLimitFailsFastWithoutNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"rooms":[]}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, ratelimit.HotelRunnerLimits)
	for i := 0; i < 5; i++ {
		_, err := c.Rooms(context.Background(), creds)
		require.NoError(t, err)
	}

	_, err := c.Rooms(context.Background(), creds)
	assert.ErrorIs(t, err, hotelrunner.ErrRateLimited)
	assert.Equal(t, int32(5), hits.Load(), "denied call must not reach the server")
}

func TestClient_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"invalid token"}`},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "redirect is not success", status: http.StatusNotModified, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newClient(t, srv.URL, ratelimit.HotelRunnerLimits)
			_, err := c.Rooms(context.Background(), creds)

			var statusErr *hotelrunner.StatusError
			require.True(t, errors.As(err, &statusErr), "got %v", err)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.body, statusErr.Body)
		})
	}
}

func TestClient_Reservations(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		assert.Equal(t, "/reservations", r.URL.Path)
		_, _ = w.Write([]byte(`{"reservations":[{"hr_number":"R123456789","state":"confirmed","total":300,"paid_amount":100}]}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, ratelimit.HotelRunnerLimits)
	undelivered := false
	res, err := c.Reservations(context.Background(), creds, hotelrunner.ReservationFilter{
		ReservationNumber: "R123456789",
		FromDate:          "2026-01-01",
		Undelivered:       &undelivered,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "R123456789", res[0].HRNumber)
	assert.Equal(t, 300.0, res[0].Total)

	assert.Equal(t, "50", got.Get("per_page"))
	assert.Equal(t, "R123456789", got.Get("reservation_number"))
	assert.Equal(t, "2026-01-01", got.Get("from_date"))
	assert.Equal(t, "false", got.Get("undelivered"))
}

func TestClient_ReservationsOmitsUnsetFilters(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"reservations":[]}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, ratelimit.HotelRunnerLimits)
	_, err := c.Reservations(context.Background(), creds, hotelrunner.ReservationFilter{})
	require.NoError(t, err)

	assert.False(t, got.Has("undelivered"))
	assert.False(t, got.Has("from_date"))
	assert.False(t, got.Has("reservation_number"))
}
