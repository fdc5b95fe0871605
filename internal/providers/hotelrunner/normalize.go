package hotelrunner

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/registry"
)

// HotelRunner exposes no rate amounts on the endpoints used here, so every
// price it produces follows one estimated policy: a flat nightly rate plus a
// single estimated tax line, tagged hotel.PriceSourceEstimated.
var (
	EstimatedNightlyRate = decimal.NewFromInt(100)
	EstimatedTaxRate     = decimal.RequireFromString("0.10")
)

// NonRefundablePrefix marks non-refundable rate plans in rate_code.
const NonRefundablePrefix = "NR:"

// Defaults for property fields HotelRunner does not supply.
const (
	DefaultCheckInTime  = "14:00"
	DefaultCheckOutTime = "12:00"
)

// CancellationType derives the refund shape from a rate code.
func CancellationType(rateCode string) hotel.CancellationType {
	if strings.HasPrefix(rateCode, NonRefundablePrefix) {
		return hotel.NonRefundable
	}
	return hotel.FreeCancellation
}

// Sellable keeps rooms sold online that are not master (parent) plans.
func Sellable(rooms []Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if r.SellOnline && !r.IsMaster {
			out = append(out, r)
		}
	}
	return out
}

// EstimatedPrice is the placeholder price of any HotelRunner rate.
func EstimatedPrice(currency string, nights int) hotel.Price {
	return hotel.NewPrice(currency, EstimatedNightlyRate, nights, []hotel.TaxRate{
		{Name: "Estimated taxes", Rate: EstimatedTaxRate},
	}, nil, hotel.PriceSourceEstimated)
}

// EstimatedPriceSummary is the search-result form of EstimatedPrice.
func EstimatedPriceSummary(currency string, nights int) hotel.PriceSummary {
	return hotel.NewPriceSummary(currency, EstimatedNightlyRate, nights, EstimatedTaxRate, false, hotel.PriceSourceEstimated)
}

// MapRoom converts a room record into a canonical Room.
func MapRoom(r Room, nights int, currency string) hotel.Room {
	cancellation := CancellationType(r.RateCode)

	rateName := "Standard Rate"
	if cancellation == hotel.NonRefundable {
		rateName = "Non-Refundable Rate"
	}

	description := r.Description
	if description == "" {
		description = r.Name
	}

	return hotel.Room{
		RoomID:      r.InvCode,
		RateID:      r.RateCode,
		Name:        r.Name,
		Description: description,
		Beds:        []hotel.Bed{{Type: "double", Count: 1}},
		MaxGuests:   r.RoomCapacity,
		Amenities:   []string{},
		Images:      []string{},
		Rate: hotel.Rate{
			Name:  rateName,
			Board: hotel.BoardRoomOnly,
			Cancellation: hotel.CancellationPolicy{
				Type: cancellation,
			},
			Payment: hotel.PaymentPolicy{
				Type:    hotel.PayNow,
				Methods: []hotel.PaymentMethod{hotel.CreditCard},
			},
			Price: EstimatedPrice(currency, nights),
		},
	}
}

// MapSummary builds the search result of a property from its preview room.
func MapSummary(p registry.Property, preview Room, nights int) hotel.PropertySummary {
	return hotel.PropertySummary{
		PropertyID: p.ID,
		Name:       p.Name,
		Address:    mapAddress(p),
		Images: hotel.Images{
			Gallery: []string{},
		},
		Amenities:    []string{},
		PriceSummary: EstimatedPriceSummary(p.Currency, nights),
		RoomPreview: hotel.RoomPreview{
			Name:         preview.Name,
			Beds:         fmt.Sprintf("Max %d adults", preview.AdultCapacity),
			MaxGuests:    preview.RoomCapacity,
			Cancellation: CancellationType(preview.RateCode),
		},
		Badges:             []string{},
		AvailabilityStatus: hotel.Available,
	}
}

// MapProperty converts a registration into a canonical Property.
// HotelRunner has no ratings, imagery or policies; those stay empty and
// check-in/out times fall back to the defaults.
func MapProperty(p registry.Property) hotel.Property {
	return hotel.Property{
		PropertyID:   p.ID,
		Name:         p.Name,
		Address:      mapAddress(p),
		CheckInTime:  DefaultCheckInTime,
		CheckOutTime: DefaultCheckOutTime,
		Images:       []string{},
		Amenities:    []string{},
	}
}

func mapAddress(p registry.Property) hotel.Address {
	return hotel.Address{
		City:        p.Location.City,
		Country:     p.Location.Country,
		Coordinates: p.Location.Coordinates,
	}
}

// MapState maps a reservation state onto a booking status.
// Unknown states map to pending.
func MapState(state string) hotel.BookingStatus {
	switch state {
	case "reserved":
		return hotel.BookingPending
	case "confirmed":
		return hotel.BookingConfirmed
	case "canceled":
		return hotel.BookingCancelled
	default:
		return hotel.BookingPending
	}
}

// MapReservation converts a reservation into a canonical Booking.
// The refund snapshot follows the first room line; a reservation without
// room lines is treated as fully refundable.
func MapReservation(res Reservation, p registry.Property) (hotel.Booking, error) {
	nights, err := hotel.NightsBetween(res.CheckinDate, res.CheckoutDate)
	if err != nil {
		return hotel.Booking{}, fmt.Errorf("reservation %s has unusable dates: %w", res.HRNumber, err)
	}

	total := decimal.NewFromFloat(res.Total)
	paid := decimal.NewFromFloat(res.PaidAmount)

	room := hotel.BookingRoom{Name: "Room", Board: hotel.BoardRoomOnly, Guests: 1}
	refund := total
	if len(res.Rooms) > 0 {
		first := res.Rooms[0]
		if first.Name != "" {
			room.Name = first.Name
		}
		if first.TotalGuest > 0 {
			room.Guests = first.TotalGuest
		}
		if first.NonRefundable {
			refund = decimal.Zero
		}
	}

	confirmation := res.HRNumber
	if res.ProviderNumber != nil && *res.ProviderNumber != "" {
		confirmation = *res.ProviderNumber
	}

	return hotel.Booking{
		Status:             MapState(res.State),
		BookingID:          res.HRNumber,
		ConfirmationNumber: confirmation,
		Property: hotel.BookingProperty{
			ID:      p.ID,
			Name:    p.Name,
			Address: p.Location.City + ", " + p.Location.Country,
		},
		Dates: hotel.DateRange{
			CheckIn:  res.CheckinDate,
			CheckOut: res.CheckoutDate,
			Nights:   nights,
		},
		Room: room,
		Guest: hotel.BookingGuest{
			Name:  res.Guest,
			Email: res.Address.Email,
		},
		Price: hotel.BookingPrice{
			Currency:   res.Currency,
			Total:      hotel.Money(total),
			Paid:       hotel.Money(paid),
			BalanceDue: hotel.Money(total.Sub(paid)),
		},
		CancellationPolicy: hotel.BookingCancellation{
			RefundIfCancelledNow: hotel.Money(refund),
		},
		CreatedAt: res.CompletedAt,
		UpdatedAt: res.UpdatedAt,
	}, nil
}
