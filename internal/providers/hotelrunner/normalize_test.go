package hotelrunner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/providers"
	"github.com/alex-user-go/eywa/internal/providers/hotelrunner"
	"github.com/alex-user-go/eywa/internal/registry"
)

var peraPalace = registry.Property{
	ID:        "prop_pera",
	Provider:  providers.HotelRunner,
	AccountID: "123456",
	Token:     "secret-token",
	Name:      "Pera Palace",
	Currency:  "EUR",
	Timezone:  "Europe/Istanbul",
	Location:  registry.Location{City: "Istanbul", Country: "Turkey"},
}

func TestMapState(t *testing.T) {
	tests := []struct {
		state string
		want  hotel.BookingStatus
	}{
		{state: "confirmed", want: hotel.BookingConfirmed},
		{state: "canceled", want: hotel.BookingCancelled},
		{state: "reserved", want: hotel.BookingPending},
		{state: "no_show", want: hotel.BookingPending},
		{state: "", want: hotel.BookingPending},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, hotelrunner.MapState(tt.state))
		})
	}
}

func TestCancellationType(t *testing.T) {
	assert.Equal(t, hotel.NonRefundable, hotelrunner.CancellationType("NR:STD"))
	assert.Equal(t, hotel.FreeCancellation, hotelrunner.CancellationType("STD"))
	assert.Equal(t, hotel.FreeCancellation, hotelrunner.CancellationType("nr:STD"))
	assert.Equal(t, hotel.FreeCancellation, hotelrunner.CancellationType("XNR:STD"))
}

func TestMapRoom(t *testing.T) {
	room := hotelrunner.Room{
		RateCode:      "NR:DBL",
		InvCode:       "HR:DBL",
		Name:          "Double Room",
		RoomCapacity:  3,
		AdultCapacity: 2,
		SellOnline:    true,
	}

	got := hotelrunner.MapRoom(room, 3, "EUR")

	assert.Equal(t, "HR:DBL", got.RoomID)
	assert.Equal(t, "NR:DBL", got.RateID)
	assert.Equal(t, "Double Room", got.Description, "missing description falls back to the name")
	assert.Equal(t, 3, got.MaxGuests)
	assert.Equal(t, "Non-Refundable Rate", got.Rate.Name)
	assert.Equal(t, hotel.NonRefundable, got.Rate.Cancellation.Type)
	assert.Equal(t, hotel.BoardRoomOnly, got.Rate.Board)

	price := got.Rate.Price
	assert.Equal(t, hotel.PriceSourceEstimated, price.Source)
	assert.Equal(t, "EUR", price.Currency)
	assert.Equal(t, []float64{100, 100, 100}, price.PerNight)
	assert.Equal(t, 300.0, price.Subtotal)
	require.Len(t, price.Taxes, 1)
	assert.False(t, price.Taxes[0].Included)
	assert.Equal(t, 30.0, price.Taxes[0].Amount)
	assert.Equal(t, 330.0, price.Total)
}

func TestEstimatedPricingIsConsistent(t *testing.T) {
	for nights := 1; nights <= 10; nights++ {
		price := hotelrunner.EstimatedPrice("EUR", nights)
		summary := hotelrunner.EstimatedPriceSummary("EUR", nights)

		assert.Equal(t, price.Subtotal, summary.Total)
		assert.Equal(t, price.Total, summary.GrandTotal)
		assert.Equal(t, price.PerNight[0], summary.PerNightAvg)
		assert.Equal(t, hotel.PriceSourceEstimated, summary.Source)
	}
}

func TestMapSummary(t *testing.T) {
	preview := hotelrunner.Room{RateCode: "STD", InvCode: "HR:SGL", Name: "Single", RoomCapacity: 1, AdultCapacity: 1}

	got := hotelrunner.MapSummary(peraPalace, preview, 2)

	assert.Equal(t, "prop_pera", got.PropertyID)
	assert.Equal(t, "Istanbul", got.Address.City)
	assert.Equal(t, "Max 1 adults", got.RoomPreview.Beds)
	assert.Equal(t, hotel.FreeCancellation, got.RoomPreview.Cancellation)
	assert.Equal(t, 0, got.StarRating, "unrated properties stay at zero")
	assert.Equal(t, 200.0, got.PriceSummary.Total)
	assert.Equal(t, 220.0, got.PriceSummary.GrandTotal)
	assert.Equal(t, hotel.Available, got.AvailabilityStatus)
}

func TestMapProperty_Defaults(t *testing.T) {
	got := hotelrunner.MapProperty(peraPalace)

	assert.Equal(t, hotelrunner.DefaultCheckInTime, got.CheckInTime)
	assert.Equal(t, hotelrunner.DefaultCheckOutTime, got.CheckOutTime)
	assert.Equal(t, "14:00", got.CheckInTime)
	assert.Equal(t, "12:00", got.CheckOutTime)
	assert.Equal(t, "Turkey", got.Address.Country)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.Amenities)
}

func reservation() hotelrunner.Reservation {
	provider := "BKG-998877"
	return hotelrunner.Reservation{
		HRNumber:       "R123456789",
		ProviderNumber: &provider,
		State:          "confirmed",
		Guest:          "Ayse Yilmaz",
		CompletedAt:    "2026-02-01T09:00:00Z",
		UpdatedAt:      "2026-02-02T09:00:00Z",
		Total:          450.5,
		Currency:       "EUR",
		CheckinDate:    "2026-03-15",
		CheckoutDate:   "2026-03-18",
		PaidAmount:     150.25,
		Address:        hotelrunner.ReservationAddr{Email: "ayse@example.com"},
		Rooms: []hotelrunner.ReservationRoom{
			{Name: "Double Room", TotalGuest: 2, NonRefundable: false},
		},
	}
}

func TestMapReservation(t *testing.T) {
	got, err := hotelrunner.MapReservation(reservation(), peraPalace)
	require.NoError(t, err)

	assert.Equal(t, hotel.BookingConfirmed, got.Status)
	assert.Equal(t, "R123456789", got.BookingID)
	assert.Equal(t, "BKG-998877", got.ConfirmationNumber)
	assert.Equal(t, "Istanbul, Turkey", got.Property.Address)
	assert.Equal(t, 3, got.Dates.Nights)
	assert.Equal(t, "Double Room", got.Room.Name)
	assert.Equal(t, 2, got.Room.Guests)
	assert.Equal(t, "ayse@example.com", got.Guest.Email)
	assert.Equal(t, 450.5, got.Price.Total)
	assert.Equal(t, 150.25, got.Price.Paid)
	assert.Equal(t, 300.25, got.Price.BalanceDue)
	assert.Equal(t, 450.5, got.CancellationPolicy.RefundIfCancelledNow)
}

func TestMapReservation_RefundSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		rooms  []hotelrunner.ReservationRoom
		want   float64
		wantRm string
	}{
		{
			name:   "non-refundable first room",
			rooms:  []hotelrunner.ReservationRoom{{Name: "A", NonRefundable: true}, {Name: "B"}},
			want:   0,
			wantRm: "A",
		},
		{
			name:   "only first room counts",
			rooms:  []hotelrunner.ReservationRoom{{Name: "A"}, {Name: "B", NonRefundable: true}},
			want:   450.5,
			wantRm: "A",
		},
		{
			name:   "no rooms is fully refundable",
			rooms:  nil,
			want:   450.5,
			wantRm: "Room",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reservation()
			res.Rooms = tt.rooms

			got, err := hotelrunner.MapReservation(res, peraPalace)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CancellationPolicy.RefundIfCancelledNow)
			assert.Equal(t, tt.wantRm, got.Room.Name)
		})
	}
}

func TestMapReservation_FallbacksAndBadDates(t *testing.T) {
	res := reservation()
	res.ProviderNumber = nil
	res.State = "mystery"

	got, err := hotelrunner.MapReservation(res, peraPalace)
	require.NoError(t, err)
	assert.Equal(t, "R123456789", got.ConfirmationNumber)
	assert.Equal(t, hotel.BookingPending, got.Status)

	res.CheckoutDate = res.CheckinDate
	_, err = hotelrunner.MapReservation(res, peraPalace)
	assert.Error(t, err)
}

func TestSellable(t *testing.T) {
	rooms := []hotelrunner.Room{
		{InvCode: "a", SellOnline: true},
		{InvCode: "b", SellOnline: false},
		{InvCode: "c", SellOnline: true, IsMaster: true},
		{InvCode: "d", SellOnline: true},
	}

	got := hotelrunner.Sellable(rooms)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].InvCode)
	assert.Equal(t, "d", got[1].InvCode)
}
