package reference

import (
	"context"
	"encoding/binary"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/providers"
)

const defaultLimit = 20

var bookingRef = regexp.MustCompile(`^(EYW-|HY-)`)

// Option configures a Provider.
type Option func(*Provider)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithIDSource replaces the source of generated identifiers.
func WithIDSource(next func() uuid.UUID) Option {
	return func(p *Provider) {
		p.nextID = next
	}
}

// record is a booking created or touched by this process.
type record struct {
	booking hotel.Booking
	roomID  string
}

// Provider is the deterministic in-process supplier. It serves any
// property id from a fixed catalog and keeps the bookings it makes in memory.
type Provider struct {
	logger *zap.Logger
	now    func() time.Time
	nextID func() uuid.UUID

	mu            sync.Mutex
	bookings      map[string]*record
	confirmations map[string]string
}

// New creates a new Provider.
func New(logger *zap.Logger, opts ...Option) *Provider {
	p := &Provider{
		logger:        logger,
		now:           time.Now,
		nextID:        uuid.New,
		bookings:      make(map[string]*record),
		confirmations: make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the provider identity.
func (p *Provider) ID() providers.ID {
	return providers.Reference
}

// BookingMatchers recognises EYW- booking ids and HY- confirmation numbers.
func (p *Provider) BookingMatchers() []providers.BookingMatcher {
	return []providers.BookingMatcher{{Pattern: bookingRef, Priority: 0}}
}

func (p *Provider) shortID() string {
	return p.nextID().String()[:8]
}

func (p *Provider) timestamp() string {
	return p.now().UTC().Format(time.RFC3339)
}

func currencyOr(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}

// Search lists the catalog under the searched destination.
func (p *Provider) Search(_ context.Context, params hotel.SearchParams) (*hotel.SearchResult, error) {
	stay, err := hotel.Stay(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	currency := currencyOr(params.Currency)

	all := make([]hotel.PropertySummary, 0, len(catalog))
	for _, l := range catalog {
		all = append(all, summarize(l, params.Destination, currency, stay.Nights))
	}

	results := make([]hotel.PropertySummary, 0, len(all))
	for i, s := range all {
		if matches(catalog[i], s, params.Filters) {
			results = append(results, s)
		}
	}
	sortResults(results, params.SortBy)

	total := len(results)
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if params.Offset >= len(results) {
		results = []hotel.PropertySummary{}
	} else {
		results = results[params.Offset:]
	}
	if limit < len(results) {
		results = results[:limit]
	}

	return &hotel.SearchResult{
		Status:       hotel.StatusSuccess,
		SearchID:     "srch_" + p.shortID(),
		Destination:  params.Destination,
		Dates:        stay,
		TotalResults: total,
		Results:      results,
		Facets:       facets(all),
	}, nil
}

func summarize(l listing, destination, currency string, nights int) hotel.PropertySummary {
	return hotel.PropertySummary{
		PropertyID:        l.ID,
		Name:              strings.TrimSpace(l.NamePrefix + " " + destination),
		StarRating:        l.StarRating,
		GuestRating:       l.GuestRating,
		GuestReviewsCount: l.Reviews,
		Address: hotel.Address{
			City:        destination,
			Country:     "TR",
			Coordinates: &hotel.Coordinates{Lat: l.Coordinates.Lat, Lng: l.Coordinates.Lng},
		},
		Images:             hotel.Images{Thumbnail: l.Thumbnail, Gallery: l.Gallery},
		Amenities:          l.Amenities,
		PriceSummary:       hotel.NewPriceSummary(currency, l.Nightly, nights, l.TaxRate, l.TaxesIncluded, hotel.PriceSourceSupplier),
		RoomPreview:        l.Preview,
		Badges:             l.Badges,
		AvailabilityStatus: l.Status,
	}
}

func matches(l listing, s hotel.PropertySummary, f hotel.SearchFilters) bool {
	if len(f.StarRating) > 0 && !slices.Contains(f.StarRating, s.StarRating) {
		return false
	}
	if f.PriceMax > 0 && s.PriceSummary.PerNightAvg > f.PriceMax {
		return false
	}
	if f.PriceMin > 0 && s.PriceSummary.PerNightAvg < f.PriceMin {
		return false
	}
	if f.GuestRatingMin > 0 && s.GuestRating < f.GuestRatingMin {
		return false
	}
	if f.RefundableOnly && s.RoomPreview.Cancellation == hotel.NonRefundable {
		return false
	}
	if f.PayAtHotel && !l.PayAtHotel {
		return false
	}
	for _, a := range f.Amenities {
		if !slices.Contains(s.Amenities, a) {
			return false
		}
	}
	return true
}

func sortResults(results []hotel.PropertySummary, order hotel.SortOrder) {
	switch order {
	case hotel.SortPriceAsc:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].PriceSummary.PerNightAvg < results[j].PriceSummary.PerNightAvg
		})
	case hotel.SortPriceDesc:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].PriceSummary.PerNightAvg > results[j].PriceSummary.PerNightAvg
		})
	case hotel.SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].GuestRating > results[j].GuestRating
		})
	}
}

func facets(all []hotel.PropertySummary) *hotel.SearchFacets {
	f := &hotel.SearchFacets{
		StarRatings: make(map[string]int),
		Amenities:   make(map[string]int),
	}
	for i, s := range all {
		avg := s.PriceSummary.PerNightAvg
		if i == 0 || avg < f.PriceRange.Min {
			f.PriceRange.Min = avg
		}
		if avg > f.PriceRange.Max {
			f.PriceRange.Max = avg
		}
		f.StarRatings[strconv.Itoa(s.StarRating)]++
		for _, a := range s.Amenities {
			f.Amenities[a]++
		}
	}
	return f
}

// Availability returns the detailed property under the requested id with
// the rooms that fit the party.
func (p *Provider) Availability(_ context.Context, params hotel.AvailabilityParams) (*hotel.AvailabilityResult, error) {
	checkIn, err := hotel.ParseDate(params.CheckIn)
	if err != nil {
		return nil, err
	}
	stay, err := hotel.Stay(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	currency := currencyOr(params.Currency)

	property := detail
	property.PropertyID = params.PropertyID

	available := make([]hotel.Room, 0, len(rooms))
	for _, r := range rooms {
		if params.Guests > r.MaxGuests {
			continue
		}
		available = append(available, mapRoom(r, checkIn, stay.Nights, currency))
	}

	return &hotel.AvailabilityResult{
		Status:         hotel.StatusSuccess,
		PropertyID:     params.PropertyID,
		Property:       property,
		Dates:          stay,
		RoomsAvailable: available,
	}, nil
}

func freeUntil(checkIn time.Time) string {
	return checkIn.AddDate(0, 0, -1).UTC().Format(time.RFC3339)
}

func mapRoom(r roomType, checkIn time.Time, nights int, currency string) hotel.Room {
	cancellation := hotel.CancellationPolicy{Type: r.Cancellation}
	if r.refundable() {
		cancellation.FreeUntil = freeUntil(checkIn)
		cancellation.PenaltyAfter = &hotel.Penalty{Type: "first_night", Amount: hotel.Money(r.Nightly)}
	}

	return hotel.Room{
		RoomID:      r.RoomID,
		RateID:      r.RateID,
		Name:        r.Name,
		Description: r.Description,
		Beds:        r.Beds,
		MaxGuests:   r.MaxGuests,
		SizeSqm:     r.SizeSqm,
		View:        r.View,
		Amenities:   r.Amenities,
		Images:      []string{r.Image},
		Rate: hotel.Rate{
			Name:         r.RateName,
			Board:        r.Board,
			Cancellation: cancellation,
			Payment:      r.Payment,
			Price:        hotel.NewPrice(currency, r.Nightly, nights, r.Taxes, nil, hotel.PriceSourceSupplier),
		},
		RemainingRooms: r.Remaining,
	}
}

// Book confirms a room of the detailed property and remembers the booking.
func (p *Provider) Book(_ context.Context, params hotel.BookingParams) (*hotel.Booking, error) {
	room, ok := findRoom(params.RoomID)
	if !ok || room.RateID != params.RateID {
		return nil, hotel.Errorf(hotel.CodeRoomUnavailable, "Room %s with rate %s is not available", params.RoomID, params.RateID).
			WithSuggestion(hotel.Suggestion{
				Action: "Check current availability",
				Tool:   "hotel/availability",
				Params: map[string]any{"property_id": params.PropertyID},
			})
	}

	checkIn, err := hotel.ParseDate(params.CheckIn)
	if err != nil {
		return nil, err
	}
	stay, err := hotel.Stay(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}

	price := hotel.NewPrice(defaultCurrency, room.Nightly, stay.Nights, room.Taxes, nil, hotel.PriceSourceSupplier)

	policy := hotel.BookingCancellation{RefundIfCancelledNow: price.Total}
	if room.refundable() {
		policy.FreeUntil = freeUntil(checkIn)
	} else {
		policy.RefundIfCancelledNow = 0
	}

	id := p.nextID()
	now := p.timestamp()
	booking := hotel.Booking{
		Status:             hotel.BookingConfirmed,
		BookingID:          fmt.Sprintf("EYW-%d-%s", p.now().UTC().Year(), id.String()[:8]),
		ConfirmationNumber: fmt.Sprintf("HY-%09d", binary.BigEndian.Uint64(id[8:])%1_000_000_000),
		Property: hotel.BookingProperty{
			ID:      params.PropertyID,
			Name:    detail.Name,
			Address: detailAddress,
			Phone:   detail.Contact.Phone,
		},
		Dates: stay,
		Room: hotel.BookingRoom{
			Name:   room.Name,
			Board:  room.Board,
			Guests: 1,
		},
		Guest: hotel.BookingGuest{
			Name:  params.Guest.FullName(),
			Email: params.Guest.Email,
		},
		Price: hotel.BookingPrice{
			Currency: price.Currency,
			Total:    price.Total,
			Paid:     price.Total,
		},
		CancellationPolicy: policy,
		Documents: &hotel.Documents{
			ConfirmationPDF: "https://example.com/confirmation.pdf",
			InvoicePDF:      "https://example.com/invoice.pdf",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	p.mu.Lock()
	p.store(&record{booking: booking, roomID: room.RoomID})
	p.mu.Unlock()

	p.logger.Info("reference booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("property_id", params.PropertyID))

	return &booking, nil
}

// store indexes r by booking id and confirmation number. Callers hold mu.
func (p *Provider) store(r *record) {
	p.bookings[r.booking.BookingID] = r
	p.confirmations[r.booking.ConfirmationNumber] = r.booking.BookingID
}

// find resolves ref to a known booking, materialising the sample booking for
// unseen references in the reference format. Callers hold mu.
func (p *Provider) find(ref string) (*record, bool) {
	if r, ok := p.bookings[ref]; ok {
		return r, true
	}
	if id, ok := p.confirmations[ref]; ok {
		return p.bookings[id], true
	}
	if !bookingRef.MatchString(ref) {
		return nil, false
	}

	r := sampleRecord(ref)
	p.store(r)
	return r, true
}

func sampleRecord(ref string) *record {
	bookingID, confirmation := ref, ref
	switch {
	case strings.HasPrefix(ref, "EYW-"):
		suffix := strings.TrimPrefix(ref, "EYW-")
		if len(ref) > 9 {
			suffix = ref[9:]
		}
		confirmation = "HY-" + suffix
	default:
		bookingID = "EYW-2026-" + strings.TrimPrefix(ref, "HY-")
	}

	room := rooms[0]
	in, _ := hotel.ParseDate(sampleCheckIn)
	out, _ := hotel.ParseDate(sampleCheckOut)
	nights, _ := hotel.Nights(in, out)
	price := hotel.NewPrice(defaultCurrency, room.Nightly, nights, room.Taxes, nil, hotel.PriceSourceSupplier)

	return &record{
		roomID: room.RoomID,
		booking: hotel.Booking{
			Status:             hotel.BookingConfirmed,
			BookingID:          bookingID,
			ConfirmationNumber: confirmation,
			Property: hotel.BookingProperty{
				ID:      samplePropertyID,
				Name:    detail.Name,
				Address: detailAddress,
				Phone:   detail.Contact.Phone,
			},
			Dates: hotel.DateRange{CheckIn: sampleCheckIn, CheckOut: sampleCheckOut, Nights: nights},
			Room: hotel.BookingRoom{
				Name:   room.Name,
				Board:  room.Board,
				Guests: 2,
			},
			Guest: hotel.BookingGuest{Name: sampleGuest, Email: sampleEmail},
			Price: hotel.BookingPrice{
				Currency: defaultCurrency,
				Total:    price.Total,
				Paid:     price.Total,
			},
			CancellationPolicy: hotel.BookingCancellation{
				FreeUntil:            sampleFreeUntil,
				RefundIfCancelledNow: price.Total,
			},
			CreatedAt: sampleCreatedAt,
			UpdatedAt: sampleCreatedAt,
		},
	}
}

// Retrieve returns a booking by id or confirmation number.
func (p *Provider) Retrieve(_ context.Context, params hotel.RetrieveParams) (*hotel.Booking, error) {
	ref := params.Reference()

	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.find(ref)
	if !ok {
		return nil, hotel.Errorf(hotel.CodeBookingNotFound, "Booking not found: %s", ref)
	}
	booking := r.booking
	return &booking, nil
}

// Cancel cancels a booking, refunding its cancellation snapshot.
func (p *Provider) Cancel(_ context.Context, params hotel.CancelParams) (*hotel.CancellationResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.find(params.BookingID)
	if !ok {
		return nil, hotel.Errorf(hotel.CodeBookingNotFound, "Booking not found: %s", params.BookingID)
	}
	if r.booking.Status == hotel.BookingCancelled {
		return nil, hotel.Errorf(hotel.CodeCancellationNotAllowed, "Booking %s is already cancelled", params.BookingID)
	}

	now := p.timestamp()
	refund := r.booking.CancellationPolicy.RefundIfCancelledNow
	r.booking.Status = hotel.BookingCancelled
	r.booking.UpdatedAt = now
	r.booking.CancellationPolicy.RefundIfCancelledNow = 0

	return &hotel.CancellationResult{
		Status:         hotel.BookingCancelled,
		BookingID:      r.booking.BookingID,
		CancellationID: "CXL_" + p.shortID(),
		Refund: hotel.Refund{
			Amount:        refund,
			Currency:      r.booking.Price.Currency,
			Method:        "original_payment",
			EstimatedDays: 5,
		},
		Reason:      params.Reason,
		CancelledAt: now,
	}, nil
}

// Modify changes dates, room or party size and reprices the stay.
func (p *Provider) Modify(_ context.Context, params hotel.ModifyParams) (*hotel.ModificationResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.find(params.BookingID)
	if !ok {
		return nil, hotel.Errorf(hotel.CodeBookingNotFound, "Booking not found: %s", params.BookingID)
	}
	if r.booking.Status == hotel.BookingCancelled {
		return nil, hotel.Errorf(hotel.CodeModificationNotAllowed, "Booking %s is cancelled", params.BookingID)
	}

	changes := make(map[string]hotel.Change)
	dates := r.booking.Dates
	if params.NewCheckIn != "" && params.NewCheckIn != dates.CheckIn {
		changes["checkIn"] = hotel.Change{From: dates.CheckIn, To: params.NewCheckIn}
		dates.CheckIn = params.NewCheckIn
	}
	if params.NewCheckOut != "" && params.NewCheckOut != dates.CheckOut {
		changes["checkOut"] = hotel.Change{From: dates.CheckOut, To: params.NewCheckOut}
		dates.CheckOut = params.NewCheckOut
	}
	stay, err := hotel.Stay(dates.CheckIn, dates.CheckOut)
	if err != nil {
		return nil, err
	}

	room, _ := findRoom(r.roomID)
	if params.NewRoomID != "" && params.NewRoomID != r.roomID {
		next, ok := findRoom(params.NewRoomID)
		if !ok {
			return nil, hotel.Errorf(hotel.CodeRoomUnavailable, "Room %s is not available", params.NewRoomID).
				WithSuggestion(hotel.Suggestion{
					Action: "Check current availability",
					Tool:   "hotel/availability",
					Params: map[string]any{"property_id": r.booking.Property.ID},
				})
		}
		changes["roomId"] = hotel.Change{From: r.roomID, To: next.RoomID}
		room = next
	}

	guests := r.booking.Room.Guests
	if params.NewGuests > 0 && params.NewGuests != guests {
		if params.NewGuests > room.MaxGuests {
			return nil, hotel.Errorf(hotel.CodeInvalidGuests, "%s sleeps at most %d guests", room.Name, room.MaxGuests)
		}
		changes["guests"] = hotel.Change{From: fmt.Sprint(guests), To: fmt.Sprint(params.NewGuests)}
		guests = params.NewGuests
	}

	currency := r.booking.Price.Currency
	original := decimal.NewFromFloat(r.booking.Price.Total)
	repriced := hotel.NewPrice(currency, room.Nightly, stay.Nights, room.Taxes, nil, hotel.PriceSourceSupplier)
	updated := decimal.NewFromFloat(repriced.Total)
	toPay := decimal.Max(updated.Sub(original), decimal.Zero)

	now := p.timestamp()
	r.roomID = room.RoomID
	r.booking.Status = hotel.BookingModified
	r.booking.Dates = stay
	r.booking.Room = hotel.BookingRoom{Name: room.Name, Board: room.Board, Guests: guests}
	r.booking.Price.Total = repriced.Total
	r.booking.Price.BalanceDue = hotel.Money(updated.Sub(decimal.NewFromFloat(r.booking.Price.Paid)))
	r.booking.UpdatedAt = now

	return &hotel.ModificationResult{
		Status:    hotel.BookingModified,
		BookingID: r.booking.BookingID,
		Changes:   changes,
		PriceDifference: hotel.PriceDifference{
			Currency: currency,
			Original: hotel.Money(original),
			New:      repriced.Total,
			ToPay:    hotel.Money(toPay),
		},
		PaymentRequired: toPay.IsPositive(),
		UpdatedAt:       now,
	}, nil
}
