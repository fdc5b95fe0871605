package tools

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/alex-user-go/eywa/internal/hotel"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var sortOrders = []hotel.SortOrder{hotel.SortPriceAsc, hotel.SortPriceDesc, hotel.SortRating, hotel.SortDistance}

// required reads string arguments, failing with INVALID_REQUEST on the first
// missing one.
func required(a Args, keys ...string) ([]string, error) {
	out := make([]string, len(keys))
	for i, key := range keys {
		v, err := a.String(key)
		if err != nil {
			return nil, err
		}
		if v == "" {
			return nil, hotel.Errorf(hotel.CodeInvalidRequest, "%s is required", key)
		}
		out[i] = v
	}
	return out, nil
}

func (d *Dispatcher) checkStay(checkIn, checkOut string) error {
	stay, err := hotel.Stay(checkIn, checkOut)
	if err != nil {
		return err
	}
	if d.rejectPast {
		in, _ := hotel.ParseDate(stay.CheckIn)
		today := d.now().UTC().Truncate(24 * time.Hour)
		if in.Before(today) {
			return hotel.NewError(hotel.CodeInvalidDates, "Check-in date cannot be in the past")
		}
	}
	return nil
}

func guests(a Args, key string) (int, error) {
	n, err := a.Int(key)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, hotel.NewError(hotel.CodeInvalidGuests, "At least one guest is required")
	}
	return n, nil
}

func rooms(a Args, key string) (int, error) {
	n, err := a.Int(key)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 1, nil
	}
	if n < 0 {
		return 0, hotel.Errorf(hotel.CodeInvalidRequest, "%s must be at least 1", key)
	}
	return n, nil
}

func (d *Dispatcher) search(ctx context.Context, a Args) (any, error) {
	req, err := required(a, "destination", "check_in", "check_out")
	if err != nil {
		return nil, err
	}
	if err := d.checkStay(req[1], req[2]); err != nil {
		return nil, err
	}
	params := hotel.SearchParams{Destination: req[0], CheckIn: req[1], CheckOut: req[2]}
	if params.Guests, err = guests(a, "guests"); err != nil {
		return nil, err
	}
	if params.Rooms, err = rooms(a, "rooms"); err != nil {
		return nil, err
	}
	if params.Currency, err = a.String("currency"); err != nil {
		return nil, err
	}
	params.Currency = strings.ToUpper(params.Currency)

	sortBy, err := a.String("sort_by")
	if err != nil {
		return nil, err
	}
	if sortBy != "" && !slices.Contains(sortOrders, hotel.SortOrder(sortBy)) {
		return nil, hotel.NewError(hotel.CodeInvalidRequest, "sort_by must be one of price_asc, price_desc, rating, distance")
	}
	params.SortBy = hotel.SortOrder(sortBy)

	if params.Limit, err = a.Int("limit"); err != nil {
		return nil, err
	}
	switch {
	case params.Limit <= 0:
		params.Limit = defaultLimit
	case params.Limit > maxLimit:
		params.Limit = maxLimit
	}
	if params.Offset, err = a.Int("offset"); err != nil {
		return nil, err
	}
	if params.Offset < 0 {
		return nil, hotel.NewError(hotel.CodeInvalidRequest, "offset must not be negative")
	}

	filters, err := a.Object("filters")
	if err != nil {
		return nil, err
	}
	if filters != nil {
		if params.Filters, err = searchFilters(filters); err != nil {
			return nil, err
		}
	}

	return d.svc.Search(ctx, params)
}

func searchFilters(a Args) (hotel.SearchFilters, error) {
	var (
		f   hotel.SearchFilters
		err error
	)
	if f.PriceMin, err = a.Float("price_min"); err != nil {
		return f, err
	}
	if f.PriceMax, err = a.Float("price_max"); err != nil {
		return f, err
	}
	if f.PriceMax > 0 && f.PriceMin > f.PriceMax {
		return f, hotel.NewError(hotel.CodeInvalidRequest, "price_min must not exceed price_max")
	}
	if f.StarRating, err = a.Ints("star_rating"); err != nil {
		return f, err
	}
	if f.Amenities, err = a.Strings("amenities"); err != nil {
		return f, err
	}
	if f.GuestRatingMin, err = a.Float("guest_rating_min"); err != nil {
		return f, err
	}
	if f.RefundableOnly, err = a.Bool("refundable_only"); err != nil {
		return f, err
	}
	if f.PayAtHotel, err = a.Bool("pay_at_hotel"); err != nil {
		return f, err
	}
	return f, nil
}

func (d *Dispatcher) availability(ctx context.Context, a Args) (any, error) {
	propertyID, err := a.String("property_id")
	if err != nil {
		return nil, err
	}
	if propertyID == "" {
		return nil, hotel.NewError(hotel.CodePropertyNotFound, "property_id is required")
	}
	req, err := required(a, "check_in", "check_out")
	if err != nil {
		return nil, err
	}
	if err := d.checkStay(req[0], req[1]); err != nil {
		return nil, err
	}
	params := hotel.AvailabilityParams{PropertyID: propertyID, CheckIn: req[0], CheckOut: req[1]}
	if params.Guests, err = guests(a, "guests"); err != nil {
		return nil, err
	}
	if params.Rooms, err = rooms(a, "rooms"); err != nil {
		return nil, err
	}
	if params.Currency, err = a.String("currency"); err != nil {
		return nil, err
	}
	params.Currency = strings.ToUpper(params.Currency)

	return d.svc.Availability(ctx, params)
}

func (d *Dispatcher) book(ctx context.Context, a Args) (any, error) {
	ids, err := required(a, "property_id", "room_id", "rate_id")
	if err != nil {
		return nil, hotel.NewError(hotel.CodeInvalidRequest, "property_id, room_id, and rate_id are required").
			WithSuggestion(hotel.Suggestion{Action: "Get available rooms first", Tool: Availability})
	}

	g, err := a.Object("guest")
	if err != nil {
		return nil, err
	}
	guest, err := bookingGuest(g)
	if err != nil {
		return nil, err
	}

	dates, err := required(a, "check_in", "check_out")
	if err != nil {
		return nil, err
	}
	if err := d.checkStay(dates[0], dates[1]); err != nil {
		return nil, err
	}

	params := hotel.BookingParams{
		PropertyID: ids[0],
		RoomID:     ids[1],
		RateID:     ids[2],
		CheckIn:    dates[0],
		CheckOut:   dates[1],
		Guest:      guest,
	}
	if params.RoomsCount, err = rooms(a, "rooms_count"); err != nil {
		return nil, err
	}
	if params.SpecialRequests, err = a.String("special_requests"); err != nil {
		return nil, err
	}

	return d.svc.Book(ctx, params)
}

func bookingGuest(a Args) (hotel.Guest, error) {
	var (
		g   hotel.Guest
		err error
	)
	for key, dst := range map[string]*string{
		"title":      &g.Title,
		"first_name": &g.FirstName,
		"last_name":  &g.LastName,
		"email":      &g.Email,
		"phone":      &g.Phone,
		"country":    &g.Country,
	} {
		if *dst, err = a.String(key); err != nil {
			return hotel.Guest{}, err
		}
	}
	if g.FirstName == "" || g.LastName == "" || g.Email == "" {
		return hotel.Guest{}, hotel.NewError(hotel.CodeInvalidRequest, "Guest first_name, last_name, and email are required")
	}
	if !strings.Contains(g.Email, "@") {
		return hotel.Guest{}, hotel.Errorf(hotel.CodeInvalidRequest, "Guest email %q is not valid", g.Email)
	}
	return g, nil
}

func (d *Dispatcher) retrieve(ctx context.Context, a Args) (any, error) {
	var (
		params hotel.RetrieveParams
		err    error
	)
	if params.BookingID, err = a.String("booking_id"); err != nil {
		return nil, err
	}
	if params.ConfirmationNumber, err = a.String("confirmation_number"); err != nil {
		return nil, err
	}
	if params.BookingID == "" && params.ConfirmationNumber == "" {
		return nil, hotel.NewError(hotel.CodeInvalidRequest, "Either booking_id or confirmation_number is required")
	}
	if params.PropertyID, err = a.String("property_id"); err != nil {
		return nil, err
	}

	return d.svc.Retrieve(ctx, params)
}

func (d *Dispatcher) cancel(ctx context.Context, a Args) (any, error) {
	req, err := required(a, "booking_id")
	if err != nil {
		return nil, err
	}
	params := hotel.CancelParams{BookingID: req[0]}
	if params.PropertyID, err = a.String("property_id"); err != nil {
		return nil, err
	}
	if params.Reason, err = a.String("reason"); err != nil {
		return nil, err
	}

	return d.svc.Cancel(ctx, params)
}

func (d *Dispatcher) modify(ctx context.Context, a Args) (any, error) {
	req, err := required(a, "booking_id")
	if err != nil {
		return nil, err
	}
	params := hotel.ModifyParams{BookingID: req[0]}
	for key, dst := range map[string]*string{
		"property_id":         &params.PropertyID,
		"new_check_in":        &params.NewCheckIn,
		"new_check_out":       &params.NewCheckOut,
		"new_room_id":         &params.NewRoomID,
		"additional_requests": &params.AdditionalRequests,
	} {
		if *dst, err = a.String(key); err != nil {
			return nil, err
		}
	}
	if params.NewCheckIn != "" && params.NewCheckOut != "" {
		if err := d.checkStay(params.NewCheckIn, params.NewCheckOut); err != nil {
			return nil, err
		}
	}
	if _, present := a.lookup("new_guests"); present {
		if params.NewGuests, err = guests(a, "new_guests"); err != nil {
			return nil, err
		}
	}

	return d.svc.Modify(ctx, params)
}
