package tools

// Schema is the subset of JSON Schema used to describe tool inputs.
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// Definition describes one tool for discovery.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

func str(desc string) Schema  { return Schema{Type: "string", Description: desc} }
func num(desc string) Schema  { return Schema{Type: "number", Description: desc} }
func intg(desc string) Schema { return Schema{Type: "integer", Description: desc} }
func flag(desc string) Schema { return Schema{Type: "boolean", Description: desc} }

func list(item, desc string) Schema {
	return Schema{Type: "array", Items: &Schema{Type: item}, Description: desc}
}

func object(desc string, props map[string]Schema, required ...string) Schema {
	return Schema{Type: "object", Description: desc, Properties: props, Required: required}
}

// Definitions returns the catalog of tools in a stable order.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        Search,
			Description: "Search for hotels matching criteria. Returns a list of properties with summary info, prices, and availability status.",
			InputSchema: object("", map[string]Schema{
				"destination": str("City, region, country, or property name to search"),
				"check_in":    str("Check-in date in YYYY-MM-DD format"),
				"check_out":   str("Check-out date in YYYY-MM-DD format"),
				"guests":      intg("Total number of guests"),
				"rooms":       intg("Number of rooms needed (default: 1)"),
				"currency":    str("ISO 4217 currency code for prices"),
				"filters": object("Optional search filters", map[string]Schema{
					"price_min":        num("Minimum price per night"),
					"price_max":        num("Maximum price per night"),
					"star_rating":      list("integer", "Accepted star ratings (e.g., [4, 5])"),
					"amenities":        list("string", "Required amenities (wifi, pool, parking, breakfast, spa, gym)"),
					"guest_rating_min": num("Minimum guest rating (0-10)"),
					"refundable_only":  flag("Only show refundable rates"),
					"pay_at_hotel":     flag("Only show pay-at-hotel options"),
				}),
				"sort_by": {
					Type:        "string",
					Description: "Sort order for results",
					Enum:        []string{"price_asc", "price_desc", "rating", "distance"},
				},
				"limit":  intg("Maximum number of results (default: 20, max: 100)"),
				"offset": intg("Number of results to skip"),
			}, "destination", "check_in", "check_out", "guests"),
		},
		{
			Name:        Availability,
			Description: "Get detailed room availability and rates for a specific property. Use after search to see all room options.",
			InputSchema: object("", map[string]Schema{
				"property_id": str("Property identifier from search results"),
				"check_in":    str("Check-in date in YYYY-MM-DD format"),
				"check_out":   str("Check-out date in YYYY-MM-DD format"),
				"guests":      intg("Number of guests"),
				"rooms":       intg("Number of rooms (default: 1)"),
				"currency":    str("Currency code"),
			}, "property_id", "check_in", "check_out", "guests"),
		},
		{
			Name:        Book,
			Description: "Create a hotel booking reservation. Requires property_id, room_id, and rate_id from availability check.",
			InputSchema: object("", map[string]Schema{
				"property_id": str("Property identifier"),
				"room_id":     str("Room identifier from availability"),
				"rate_id":     str("Rate plan identifier from availability"),
				"check_in":    str("Check-in date"),
				"check_out":   str("Check-out date"),
				"guest": object("Primary guest details", map[string]Schema{
					"title":      {Type: "string", Enum: []string{"Mr", "Mrs", "Ms", "Dr"}},
					"first_name": {Type: "string"},
					"last_name":  {Type: "string"},
					"email":      {Type: "string"},
					"phone":      {Type: "string"},
					"country":    str("ISO country code"),
				}, "first_name", "last_name", "email"),
				"rooms_count":      intg("Number of rooms to book"),
				"special_requests": str("Special requests for the hotel"),
			}, "property_id", "room_id", "rate_id", "check_in", "check_out", "guest"),
		},
		{
			Name:        Retrieve,
			Description: "Retrieve details of an existing booking by booking ID or confirmation number.",
			InputSchema: object("", map[string]Schema{
				"booking_id":          str("Booking ID (e.g., EYW-2026-ABC123)"),
				"confirmation_number": str("Hotel confirmation number"),
				"property_id":         str("Property the booking belongs to, when known"),
			}),
		},
		{
			Name:        Cancel,
			Description: "Cancel a hotel booking. Returns refund information based on cancellation policy.",
			InputSchema: object("", map[string]Schema{
				"booking_id":  str("Booking ID to cancel"),
				"property_id": str("Property the booking belongs to, when known"),
				"reason":      str("Reason for cancellation"),
			}, "booking_id"),
		},
		{
			Name:        Modify,
			Description: "Modify an existing booking (change dates, room type, or guest count). May incur price changes.",
			InputSchema: object("", map[string]Schema{
				"booking_id":          str("Booking ID to modify"),
				"property_id":         str("Property the booking belongs to, when known"),
				"new_check_in":        str("New check-in date"),
				"new_check_out":       str("New check-out date"),
				"new_room_id":         str("New room type ID"),
				"new_guests":          intg("Updated guest count"),
				"additional_requests": str("Additional special requests"),
			}, "booking_id"),
		},
	}
}
