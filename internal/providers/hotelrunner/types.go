package hotelrunner

// Room is a HotelRunner room/rate plan record from GET /rooms.
type Room struct {
	RateCode           string   `json:"rate_code"`
	InvCode            string   `json:"inv_code"`
	AvailabilityUpdate bool     `json:"availability_update"`
	RestrictionsUpdate bool     `json:"restrictions_update"`
	PriceUpdate        bool     `json:"price_update"`
	PricingType        string   `json:"pricing_type"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Policy             string   `json:"policy"`
	RoomCapacity       int      `json:"room_capacity"`
	AdultCapacity      int      `json:"adult_capacity"`
	IsMaster           bool     `json:"is_master"`
	Shared             bool     `json:"shared"`
	ChannelCodes       []string `json:"channel_codes"`
	SalesCurrency      string   `json:"sales_currency"`
	SellOnline         bool     `json:"sell_online"`
}

// Reservation is a HotelRunner reservation record from GET /reservations.
type Reservation struct {
	HRNumber         string            `json:"hr_number"`
	ProviderNumber   *string           `json:"provider_number"`
	Channel          string            `json:"channel"`
	ChannelDisplay   string            `json:"channel_display"`
	State            string            `json:"state"`
	Modified         bool              `json:"modified"`
	Guest            string            `json:"guest"`
	CancelReason     *string           `json:"cancel_reason"`
	CompletedAt      string            `json:"completed_at"`
	UpdatedAt        string            `json:"updated_at"`
	SubTotal         float64           `json:"sub_total"`
	ExtrasTotal      float64           `json:"extras_total"`
	AdjustmentsTotal float64           `json:"adjustments_total"`
	TaxTotal         float64           `json:"tax_total"`
	Total            float64           `json:"total"`
	Currency         string            `json:"currency"`
	CheckinDate      string            `json:"checkin_date"`
	CheckoutDate     string            `json:"checkout_date"`
	Note             *string           `json:"note"`
	Payment          string            `json:"payment"`
	PaidAmount       float64           `json:"paid_amount"`
	RequiresResponse bool              `json:"requires_response"`
	Address          ReservationAddr   `json:"address"`
	Rooms            []ReservationRoom `json:"rooms"`
}

// ReservationAddr is the guest address of a reservation.
type ReservationAddr struct {
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Street      string  `json:"street"`
	Street2     *string `json:"street_2"`
}

// ReservationRoom is one room line of a reservation.
type ReservationRoom struct {
	State         string       `json:"state"`
	RateCode      string       `json:"rate_code"`
	InvCode       string       `json:"inv_code"`
	Price         float64      `json:"price"`
	NonRefundable bool         `json:"non_refundable"`
	Nights        int          `json:"nights"`
	TotalGuest    int          `json:"total_guest"`
	TotalAdult    int          `json:"total_adult"`
	ChildAges     []int        `json:"child_ages"`
	Name          string       `json:"name"`
	CheckinDate   string       `json:"checkin_date"`
	CheckoutDate  string       `json:"checkout_date"`
	ExtraInfo     string       `json:"extra_info"`
	DailyPrices   []DailyPrice `json:"daily_prices"`
	Extras        []Extra      `json:"extras"`
}

// DailyPrice is a per-date price, quoted as a string by the API.
type DailyPrice struct {
	Date  string `json:"date"`
	Price string `json:"price"`
}

// Extra is a paid add-on of a reservation room.
type Extra struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type roomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type reservationsResponse struct {
	Reservations []Reservation `json:"reservations"`
}
