package hotel_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/eywa/internal/hotel"
)

func TestNewPrice(t *testing.T) {
	taxes := []hotel.TaxRate{
		{Name: "VAT", Rate: decimal.RequireFromString("0.08")},
		{Name: "City Tax", Rate: decimal.RequireFromString("0.05")},
		{Name: "Service", Rate: decimal.RequireFromString("0.10"), Included: true},
	}
	fees := []hotel.Fee{{Name: "Resort fee", Amount: 12.5, Type: "per_stay"}}

	p := hotel.NewPrice("USD", decimal.NewFromInt(185), 3, taxes, fees, hotel.PriceSourceSupplier)

	assert.Equal(t, []float64{185, 185, 185}, p.PerNight)
	assert.Equal(t, 555.0, p.Subtotal)
	require.Len(t, p.Taxes, 3)
	assert.Equal(t, 44.4, p.Taxes[0].Amount)
	assert.Equal(t, 27.75, p.Taxes[1].Amount)
	assert.Equal(t, 55.5, p.Taxes[2].Amount)
	assert.Equal(t, 639.65, p.Total)
	assert.Equal(t, hotel.PriceSourceSupplier, p.Source)
}

func TestNewPrice_TotalInvariant(t *testing.T) {
	rates := []string{"99.99", "100", "185", "420", "0.01"}
	for _, r := range rates {
		for nights := 1; nights <= 14; nights++ {
			p := hotel.NewPrice("EUR", decimal.RequireFromString(r), nights, []hotel.TaxRate{
				{Name: "VAT", Rate: decimal.RequireFromString("0.08")},
				{Name: "City Tax", Rate: decimal.RequireFromString("0.04")},
			}, nil, hotel.PriceSourceEstimated)

			require.Len(t, p.PerNight, nights)
			sum := decimal.NewFromFloat(p.Subtotal)
			for _, tax := range p.Taxes {
				if !tax.Included {
					sum = sum.Add(decimal.NewFromFloat(tax.Amount))
				}
			}
			assert.InDelta(t, sum.InexactFloat64(), p.Total, 0.005, "rate %s nights %d", r, nights)
		}
	}
}

func TestNewPriceSummary(t *testing.T) {
	tests := []struct {
		name          string
		nightly       int64
		nights        int
		taxesIncluded bool
		want          hotel.PriceSummary
	}{
		{
			name:    "taxes on top",
			nightly: 185,
			nights:  3,
			want: hotel.PriceSummary{
				Currency: "USD", PerNightAvg: 185, Total: 555, TaxesFees: 72.15, GrandTotal: 627.15,
				Source: hotel.PriceSourceSupplier,
			},
		},
		{
			name:          "taxes included",
			nightly:       95,
			nights:        2,
			taxesIncluded: true,
			want: hotel.PriceSummary{
				Currency: "USD", PerNightAvg: 95, Total: 190, TaxesIncluded: true, GrandTotal: 190,
				Source: hotel.PriceSourceSupplier,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hotel.NewPriceSummary("USD", decimal.NewFromInt(tt.nightly), tt.nights,
				decimal.RequireFromString("0.13"), tt.taxesIncluded, hotel.PriceSourceSupplier)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	err := hotel.NewError(hotel.CodeProviderError, "no direct booking").
		WithDetail("provider", "hotelrunner").
		WithSuggestion(hotel.Suggestion{
			Action: "Use the property's direct booking URL",
			Tool:   "hotel/availability",
			Params: map[string]any{"includeBookingUrl": true},
		})

	data, jerr := json.Marshal(hotel.Envelope(err))
	require.NoError(t, jerr)
	assert.JSONEq(t, `{
		"status": "error",
		"error": {
			"code": "PROVIDER_ERROR",
			"message": "no direct booking",
			"details": {"provider": "hotelrunner"},
			"suggestions": [{
				"action": "Use the property's direct booking URL",
				"tool": "hotel/availability",
				"params": {"includeBookingUrl": true}
			}]
		}
	}`, string(data))

	wrapped := fmt.Errorf("calling provider: %w", err)
	got, ok := hotel.AsError(wrapped)
	require.True(t, ok)
	assert.Same(t, err, got)
	assert.Equal(t, "PROVIDER_ERROR: no direct booking", err.Error())
}
