package main

import "github.com/alex-user-go/eywa/internal/providers/hotelrunner"

func ptr(s string) *string { return &s }

// seedAccounts returns one Istanbul property with a small room catalog and
// a confirmed reservation.
func seedAccounts() map[string]account {
	return map[string]account{
		"123456": {
			Token: "dev-token",
			Rooms: []hotelrunner.Room{
				{RateCode: "MASTER", InvCode: "HR:ALL", Name: "All Rooms", IsMaster: true, SellOnline: true},
				{
					RateCode: "STD", InvCode: "HR:DBL", Name: "Double Room",
					Description:  "Classic double room overlooking the Golden Horn",
					RoomCapacity: 2, AdultCapacity: 2, SellOnline: true, SalesCurrency: "EUR",
				},
				{
					RateCode: "NR:STD", InvCode: "HR:DBL", Name: "Double Room",
					RoomCapacity: 2, AdultCapacity: 2, SellOnline: true, SalesCurrency: "EUR",
				},
				{
					RateCode: "STD", InvCode: "HR:FAM", Name: "Family Suite",
					RoomCapacity: 4, AdultCapacity: 3, SellOnline: true, SalesCurrency: "EUR",
				},
				{RateCode: "STD", InvCode: "HR:STAFF", Name: "Staff Room", RoomCapacity: 1, AdultCapacity: 1},
			},
			Reservations: []hotelrunner.Reservation{
				{
					HRNumber:       "R123456789",
					ProviderNumber: ptr("BKG-998877"),
					Channel:        "booking_com",
					State:          "confirmed",
					Guest:          "Ayse Yilmaz",
					CompletedAt:    "2026-02-01T09:00:00Z",
					UpdatedAt:      "2026-02-02T09:00:00Z",
					SubTotal:       409.55,
					TaxTotal:       40.95,
					Total:          450.5,
					Currency:       "EUR",
					CheckinDate:    "2026-03-15",
					CheckoutDate:   "2026-03-18",
					PaidAmount:     150.25,
					Address:        hotelrunner.ReservationAddr{City: "Ankara", Country: "Turkey", Email: "ayse@example.com"},
					Rooms: []hotelrunner.ReservationRoom{
						{State: "confirmed", RateCode: "STD", InvCode: "HR:DBL", Name: "Double Room", Nights: 3, TotalGuest: 2, TotalAdult: 2},
					},
				},
			},
		},
	}
}
