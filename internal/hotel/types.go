package hotel

// StatusSuccess is the envelope status of a successful search or availability result.
const StatusSuccess = "success"

// PriceSource tags where a price came from.
type PriceSource string

const (
	// PriceSourceSupplier marks prices quoted by the supplier itself.
	PriceSourceSupplier PriceSource = "supplier"
	// PriceSourceEstimated marks placeholder prices produced when the supplier exposes no rate data.
	PriceSourceEstimated PriceSource = "estimated"
)

// AvailabilityStatus describes how much inventory a property has left.
type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	Limited     AvailabilityStatus = "limited"
	Unavailable AvailabilityStatus = "unavailable"
)

// BoardType is the meal-inclusion level of a rate.
type BoardType string

const (
	BoardRoomOnly          BoardType = "room_only"
	BoardBreakfastIncluded BoardType = "breakfast_included"
	BoardHalfBoard         BoardType = "half_board"
	BoardFullBoard         BoardType = "full_board"
	BoardAllInclusive      BoardType = "all_inclusive"
)

// CancellationType is the refund shape of a rate.
type CancellationType string

const (
	FreeCancellation CancellationType = "free_cancellation"
	FreeUntil24h     CancellationType = "free_until_24h"
	FreeUntil48h     CancellationType = "free_until_48h"
	FreeUntil7d      CancellationType = "free_until_7d"
	PartialRefund    CancellationType = "partial_refund"
	NonRefundable    CancellationType = "non_refundable"
)

// PaymentType describes when a rate is paid.
type PaymentType string

const (
	PayNow     PaymentType = "pay_now"
	PayAtHotel PaymentType = "pay_at_hotel"
	Deposit    PaymentType = "deposit"
)

// PaymentMethod is an accepted means of payment.
type PaymentMethod string

const (
	CreditCard   PaymentMethod = "credit_card"
	DebitCard    PaymentMethod = "debit_card"
	BankTransfer PaymentMethod = "bank_transfer"
	Cash         PaymentMethod = "cash"
	PayPal       PaymentMethod = "paypal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingModified  BookingStatus = "modified"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

// SortOrder orders search results.
type SortOrder string

const (
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortRating    SortOrder = "rating"
	SortDistance  SortOrder = "distance"
)

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is a postal address.
type Address struct {
	Street      string       `json:"street,omitempty"`
	City        string       `json:"city"`
	Region      string       `json:"region,omitempty"`
	Country     string       `json:"country"`
	PostalCode  string       `json:"postalCode,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// DateRange is a stay.
type DateRange struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   int    `json:"nights"`
}

// Images holds property imagery for search results.
type Images struct {
	Thumbnail string   `json:"thumbnail"`
	Gallery   []string `json:"gallery"`
}

// PriceSummary is the aggregate price shown in search results.
type PriceSummary struct {
	Currency      string      `json:"currency"`
	PerNightAvg   float64     `json:"perNightAvg"`
	Total         float64     `json:"total"`
	TaxesIncluded bool        `json:"taxesIncluded"`
	TaxesFees     float64     `json:"taxesFees,omitempty"`
	GrandTotal    float64     `json:"grandTotal"`
	Source        PriceSource `json:"source"`
}

// RoomPreview is the representative room shown in search results.
type RoomPreview struct {
	Name              string           `json:"name"`
	Beds              string           `json:"beds"`
	MaxGuests         int              `json:"maxGuests"`
	BreakfastIncluded bool             `json:"breakfastIncluded"`
	Cancellation      CancellationType `json:"cancellation"`
}

// PropertySummary is a property as listed in search results.
type PropertySummary struct {
	PropertyID         string             `json:"propertyId"`
	Name               string             `json:"name"`
	StarRating         int                `json:"starRating"`
	GuestRating        float64            `json:"guestRating"`
	GuestReviewsCount  int                `json:"guestReviewsCount"`
	Address            Address            `json:"address"`
	Images             Images             `json:"images"`
	Amenities          []string           `json:"amenities"`
	PriceSummary       PriceSummary       `json:"priceSummary"`
	RoomPreview        RoomPreview        `json:"roomPreview"`
	Badges             []string           `json:"badges"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
}

// PropertyPolicies are the house rules of a property.
type PropertyPolicies struct {
	Children     string `json:"children,omitempty"`
	Pets         string `json:"pets,omitempty"`
	Smoking      string `json:"smoking,omitempty"`
	Cancellation string `json:"cancellation,omitempty"`
}

// Contact holds property contact details.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Property is the full detail of a property.
type Property struct {
	PropertyID        string           `json:"propertyId"`
	Name              string           `json:"name"`
	StarRating        int              `json:"starRating"`
	GuestRating       float64          `json:"guestRating"`
	GuestReviewsCount int              `json:"guestReviewsCount"`
	Description       string           `json:"description"`
	Address           Address          `json:"address"`
	CheckInTime       string           `json:"checkInTime"`
	CheckOutTime      string           `json:"checkOutTime"`
	Images            []string         `json:"images"`
	Amenities         []string         `json:"amenities"`
	Policies          PropertyPolicies `json:"policies"`
	Contact           Contact          `json:"contact"`
}

// Bed is one bed type in a room.
type Bed struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Penalty is what a late cancellation costs.
type Penalty struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// CancellationPolicy describes the refund terms of a rate.
type CancellationPolicy struct {
	Type         CancellationType `json:"type"`
	FreeUntil    string           `json:"freeUntil,omitempty"`
	PenaltyAfter *Penalty         `json:"penaltyAfter,omitempty"`
}

// PaymentPolicy describes how a rate is paid.
type PaymentPolicy struct {
	Type          PaymentType     `json:"type"`
	Methods       []PaymentMethod `json:"methods"`
	DepositAmount float64         `json:"depositAmount,omitempty"`
}

// Tax is one tax line of a price.
type Tax struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Included bool    `json:"included"`
}

// Fee is one fee line of a price.
type Fee struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// Price is the full breakdown of a rate for a stay.
type Price struct {
	Currency string      `json:"currency"`
	PerNight []float64   `json:"perNight"`
	Subtotal float64     `json:"subtotal"`
	Taxes    []Tax       `json:"taxes"`
	Fees     []Fee       `json:"fees"`
	Total    float64     `json:"total"`
	Source   PriceSource `json:"source"`
}

// Rate is one purchasable combination of board, terms and price.
type Rate struct {
	Name         string             `json:"name"`
	Board        BoardType          `json:"board"`
	Cancellation CancellationPolicy `json:"cancellation"`
	Payment      PaymentPolicy      `json:"payment"`
	Price        Price              `json:"price"`
}

// Room is one bookable room and rate. RoomID and RateID are opaque provider tokens.
type Room struct {
	RoomID         string   `json:"roomId"`
	RateID         string   `json:"rateId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Beds           []Bed    `json:"beds"`
	MaxGuests      int      `json:"maxGuests"`
	SizeSqm        int      `json:"sizeSqm,omitempty"`
	View           string   `json:"view,omitempty"`
	Amenities      []string `json:"amenities"`
	Images         []string `json:"images"`
	Rate           Rate     `json:"rate"`
	RemainingRooms int      `json:"remainingRooms,omitempty"`
}

// BookingProperty identifies the property of a booking.
type BookingProperty struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}

// BookingRoom summarises the booked room.
type BookingRoom struct {
	Name   string    `json:"name"`
	Board  BoardType `json:"board"`
	Guests int       `json:"guests"`
}

// BookingGuest is the lead guest of a booking.
type BookingGuest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingPrice is the money side of a booking.
type BookingPrice struct {
	Currency   string  `json:"currency"`
	Total      float64 `json:"total"`
	Paid       float64 `json:"paid"`
	BalanceDue float64 `json:"balanceDue"`
}

// BookingCancellation is the cancellation snapshot frozen at booking time.
type BookingCancellation struct {
	FreeUntil            string  `json:"freeUntil,omitempty"`
	RefundIfCancelledNow float64 `json:"refundIfCancelledNow"`
}

// Documents links booking paperwork.
type Documents struct {
	ConfirmationPDF string `json:"confirmationPdf,omitempty"`
	InvoicePDF      string `json:"invoicePdf,omitempty"`
}

// Booking is the outcome of a reservation.
type Booking struct {
	Status             BookingStatus       `json:"status"`
	BookingID          string              `json:"bookingId"`
	ConfirmationNumber string              `json:"confirmationNumber"`
	Property           BookingProperty     `json:"property"`
	Dates              DateRange           `json:"dates"`
	Room               BookingRoom         `json:"room"`
	Guest              BookingGuest        `json:"guest"`
	Price              BookingPrice        `json:"price"`
	CancellationPolicy BookingCancellation `json:"cancellationPolicy"`
	Documents          *Documents          `json:"documents,omitempty"`
	CreatedAt          string              `json:"createdAt"`
	UpdatedAt          string              `json:"updatedAt"`
}

// SearchFilters narrows search results.
type SearchFilters struct {
	PriceMin       float64  `json:"priceMin,omitempty"`
	PriceMax       float64  `json:"priceMax,omitempty"`
	StarRating     []int    `json:"starRating,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	GuestRatingMin float64  `json:"guestRatingMin,omitempty"`
	RefundableOnly bool     `json:"refundableOnly,omitempty"`
	PayAtHotel     bool     `json:"payAtHotel,omitempty"`
}

// SearchParams are the inputs of a destination search.
type SearchParams struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Guests      int
	Rooms       int
	Currency    string
	Filters     SearchFilters
	SortBy      SortOrder
	Limit       int
	Offset      int
}

// PriceRange is a min/max pair.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchFacets summarises the result set for refinement.
type SearchFacets struct {
	PriceRange  PriceRange     `json:"priceRange"`
	StarRatings map[string]int `json:"starRatings"`
	Amenities   map[string]int `json:"amenities"`
}

// SearchResult is the outcome of a search.
type SearchResult struct {
	Status       string            `json:"status"`
	SearchID     string            `json:"searchId"`
	Destination  string            `json:"destination"`
	Dates        DateRange         `json:"dates"`
	TotalResults int               `json:"totalResults"`
	Results      []PropertySummary `json:"results"`
	Facets       *SearchFacets     `json:"facets,omitempty"`
}

// AvailabilityParams are the inputs of an availability lookup.
type AvailabilityParams struct {
	PropertyID string
	CheckIn    string
	CheckOut   string
	Guests     int
	Rooms      int
	Currency   string
}

// AvailabilityResult lists the bookable rooms of a property.
type AvailabilityResult struct {
	Status         string    `json:"status"`
	PropertyID     string    `json:"propertyId"`
	Property       Property  `json:"property"`
	Dates          DateRange `json:"dates"`
	RoomsAvailable []Room    `json:"roomsAvailable"`
}

// Guest is the person a booking is made for.
type Guest struct {
	Title     string `json:"title,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`
}

// FullName joins title, first and last name.
func (g Guest) FullName() string {
	name := g.FirstName + " " + g.LastName
	if g.Title != "" {
		name = g.Title + " " + name
	}
	return name
}

// BookingParams are the inputs of a booking.
type BookingParams struct {
	PropertyID      string
	RoomID          string
	RateID          string
	CheckIn         string
	CheckOut        string
	Guest           Guest
	RoomsCount      int
	SpecialRequests string
}

// RetrieveParams identify an existing booking.
type RetrieveParams struct {
	BookingID          string
	ConfirmationNumber string
	PropertyID         string
}

// Reference returns the identifier used to look the booking up.
func (p RetrieveParams) Reference() string {
	if p.BookingID != "" {
		return p.BookingID
	}
	return p.ConfirmationNumber
}

// CancelParams are the inputs of a cancellation.
type CancelParams struct {
	BookingID  string
	PropertyID string
	Reason     string
}

// Refund describes money returned on cancellation.
type Refund struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method"`
	EstimatedDays int     `json:"estimatedDays"`
}

// CancellationResult is the outcome of a cancellation.
type CancellationResult struct {
	Status         BookingStatus `json:"status"`
	BookingID      string        `json:"bookingId"`
	CancellationID string        `json:"cancellationId"`
	Refund         Refund        `json:"refund"`
	Reason         string        `json:"reason,omitempty"`
	CancelledAt    string        `json:"cancelledAt"`
}

// ModifyParams are the inputs of a modification. Zero values mean "unchanged".
type ModifyParams struct {
	BookingID          string
	PropertyID         string
	NewCheckIn         string
	NewCheckOut        string
	NewRoomID          string
	NewGuests          int
	AdditionalRequests string
}

// Change is one field changed by a modification.
type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PriceDifference is the price impact of a modification.
type PriceDifference struct {
	Currency string  `json:"currency"`
	Original float64 `json:"original"`
	New      float64 `json:"new"`
	ToPay    float64 `json:"toPay"`
}

// ModificationResult is the outcome of a modification.
type ModificationResult struct {
	Status          BookingStatus     `json:"status"`
	BookingID       string            `json:"bookingId"`
	Changes         map[string]Change `json:"changes"`
	PriceDifference PriceDifference   `json:"priceDifference"`
	PaymentRequired bool              `json:"paymentRequired"`
	UpdatedAt       string            `json:"updatedAt"`
}
