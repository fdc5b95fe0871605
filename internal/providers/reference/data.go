package reference

import (
	"github.com/shopspring/decimal"

	"github.com/alex-user-go/eywa/internal/hotel"
)

const defaultCurrency = "USD"

// listing is one property of the search catalog. Names are completed with
// the searched destination.
type listing struct {
	ID            string
	NamePrefix    string
	StarRating    int
	GuestRating   float64
	Reviews       int
	Coordinates   hotel.Coordinates
	Thumbnail     string
	Gallery       []string
	Amenities     []string
	Nightly       decimal.Decimal
	TaxRate       decimal.Decimal
	TaxesIncluded bool
	PayAtHotel    bool
	Preview       hotel.RoomPreview
	Badges        []string
	Status        hotel.AvailabilityStatus
}

var catalog = []listing{
	{
		ID:          "prop_grand_hyatt_ist",
		NamePrefix:  "Grand Hyatt",
		StarRating:  5,
		GuestRating: 9.1,
		Reviews:     2847,
		Coordinates: hotel.Coordinates{Lat: 41.0451, Lng: 28.9947},
		Thumbnail:   "https://example.com/grand-hyatt-thumb.jpg",
		Gallery:     []string{"https://example.com/grand-hyatt-1.jpg"},
		Amenities:   []string{"wifi", "pool", "spa", "gym", "restaurant", "parking"},
		Nightly:     decimal.NewFromInt(185),
		TaxRate:     decimal.RequireFromString("0.13"),
		Preview: hotel.RoomPreview{
			Name:              "Deluxe King Room",
			Beds:              "1 King",
			MaxGuests:         2,
			BreakfastIncluded: true,
			Cancellation:      hotel.FreeUntil24h,
		},
		Badges: []string{"top_rated", "free_cancellation"},
		Status: hotel.Available,
	},
	{
		ID:          "prop_hilton_ist",
		NamePrefix:  "Hilton",
		StarRating:  5,
		GuestRating: 8.8,
		Reviews:     3421,
		Coordinates: hotel.Coordinates{Lat: 41.0391, Lng: 28.9956},
		Thumbnail:   "https://example.com/hilton-thumb.jpg",
		Gallery:     []string{"https://example.com/hilton-1.jpg"},
		Amenities:   []string{"wifi", "pool", "gym", "restaurant", "parking", "business_center"},
		Nightly:     decimal.NewFromInt(165),
		TaxRate:     decimal.RequireFromString("0.13"),
		PayAtHotel:  true,
		Preview: hotel.RoomPreview{
			Name:         "Executive Room",
			Beds:         "1 King or 2 Twin",
			MaxGuests:    2,
			Cancellation: hotel.FreeUntil48h,
		},
		Badges: []string{"free_cancellation"},
		Status: hotel.Available,
	},
	{
		ID:            "prop_boutique_ist",
		NamePrefix:    "Boutique Hotel",
		StarRating:    4,
		GuestRating:   9.3,
		Reviews:       892,
		Coordinates:   hotel.Coordinates{Lat: 41.0082, Lng: 28.9784},
		Thumbnail:     "https://example.com/boutique-thumb.jpg",
		Gallery:       []string{"https://example.com/boutique-1.jpg"},
		Amenities:     []string{"wifi", "restaurant", "bar", "concierge"},
		Nightly:       decimal.NewFromInt(95),
		TaxesIncluded: true,
		Preview: hotel.RoomPreview{
			Name:              "Superior Double",
			Beds:              "1 Queen",
			MaxGuests:         2,
			BreakfastIncluded: true,
			Cancellation:      hotel.NonRefundable,
		},
		Badges: []string{"top_rated", "great_value"},
		Status: hotel.Limited,
	},
}

// detail is returned by every availability lookup.
var detail = hotel.Property{
	Name:              "Grand Hyatt Istanbul",
	StarRating:        5,
	GuestRating:       9.1,
	GuestReviewsCount: 2847,
	Description:       "Luxury 5-star hotel in the heart of Istanbul with stunning Bosphorus views.",
	Address: hotel.Address{
		Street:      "Taskisla Caddesi No:1",
		City:        "Istanbul",
		Region:      "Beyoglu",
		Country:     "TR",
		PostalCode:  "34437",
		Coordinates: &hotel.Coordinates{Lat: 41.0451, Lng: 28.9947},
	},
	CheckInTime:  "15:00",
	CheckOutTime: "12:00",
	Images:       []string{"https://example.com/grand-hyatt-1.jpg"},
	Amenities:    []string{"wifi", "pool", "spa", "gym", "restaurant", "parking"},
	Policies: hotel.PropertyPolicies{
		Children: "Children of all ages welcome",
		Pets:     "Pets not allowed",
		Smoking:  "Non-smoking property",
	},
	Contact: hotel.Contact{
		Phone: "+90 212 368 1234",
		Email: "istanbul.grand@hyatt.com",
	},
}

const detailAddress = "Taskisla Caddesi No:1, Istanbul"

// roomType is a bookable room of the detailed property with its single rate.
type roomType struct {
	RoomID       string
	RateID       string
	Name         string
	Description  string
	Beds         []hotel.Bed
	MaxGuests    int
	SizeSqm      int
	View         string
	Amenities    []string
	Image        string
	RateName     string
	Board        hotel.BoardType
	Cancellation hotel.CancellationType
	Payment      hotel.PaymentPolicy
	Nightly      decimal.Decimal
	Taxes        []hotel.TaxRate
	Remaining    int
}

func (r roomType) refundable() bool {
	return r.Cancellation != hotel.NonRefundable
}

var rooms = []roomType{
	{
		RoomID:       "room_deluxe_king",
		RateID:       "rate_bar",
		Name:         "Deluxe King Room",
		Description:  "45 sqm room with city view, king bed, marble bathroom",
		Beds:         []hotel.Bed{{Type: "king", Count: 1}},
		MaxGuests:    2,
		SizeSqm:      45,
		View:         "city",
		Amenities:    []string{"wifi", "minibar", "safe", "tv", "air_conditioning", "room_service"},
		Image:        "https://example.com/deluxe-king.jpg",
		RateName:     "Best Available Rate",
		Board:        hotel.BoardBreakfastIncluded,
		Cancellation: hotel.FreeCancellation,
		Payment: hotel.PaymentPolicy{
			Type:    hotel.PayNow,
			Methods: []hotel.PaymentMethod{hotel.CreditCard},
		},
		Nightly: decimal.NewFromInt(185),
		Taxes: []hotel.TaxRate{
			{Name: "VAT", Rate: decimal.RequireFromString("0.08")},
			{Name: "City Tax", Rate: decimal.RequireFromString("0.05")},
		},
		Remaining: 3,
	},
	{
		RoomID:       "room_grand_suite",
		RateID:       "rate_suite",
		Name:         "Grand Suite",
		Description:  "85 sqm suite with Bosphorus view, separate living area",
		Beds:         []hotel.Bed{{Type: "king", Count: 1}, {Type: "sofa_bed", Count: 1}},
		MaxGuests:    3,
		SizeSqm:      85,
		View:         "bosphorus",
		Amenities:    []string{"wifi", "minibar", "safe", "tv", "air_conditioning", "room_service", "lounge_access", "butler"},
		Image:        "https://example.com/grand-suite.jpg",
		RateName:     "Suite Special",
		Board:        hotel.BoardHalfBoard,
		Cancellation: hotel.NonRefundable,
		Payment: hotel.PaymentPolicy{
			Type:    hotel.PayAtHotel,
			Methods: []hotel.PaymentMethod{hotel.CreditCard, hotel.Cash},
		},
		Nightly: decimal.NewFromInt(420),
		Taxes: []hotel.TaxRate{
			{Name: "VAT", Rate: decimal.RequireFromString("0.08")},
			{Name: "City Tax", Rate: decimal.RequireFromString("0.04")},
		},
		Remaining: 1,
	},
}

func findRoom(roomID string) (roomType, bool) {
	for _, r := range rooms {
		if r.RoomID == roomID {
			return r, true
		}
	}
	return roomType{}, false
}

// Sample booking returned for references in the reference format that
// were not created by this process.
const (
	samplePropertyID = "prop_grand_hyatt_ist"
	sampleCheckIn    = "2026-03-15"
	sampleCheckOut   = "2026-03-18"
	sampleGuest      = "Mr John Smith"
	sampleEmail      = "john.smith@example.com"
	sampleFreeUntil  = "2026-03-14T15:00:00Z"
	sampleCreatedAt  = "2026-02-24T10:00:00Z"
)
