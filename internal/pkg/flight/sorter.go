package flight

import (
	"sort"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
)

// SortOffers sorts in place and returns the slice. Unknown fields fall
// back to price; order is "asc" unless "desc" is given.
func SortOffers(offers []dto.Offer, field string, order string) []dto.Offer {
	if order != "desc" {
		order = "asc"
	}

	switch field {
	case "duration":
		sort.SliceStable(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].TotalDurationMinutes < offers[j].TotalDurationMinutes
			}
			return offers[i].TotalDurationMinutes > offers[j].TotalDurationMinutes
		})
	case "departure_time":
		sort.SliceStable(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].Outbound.Departure.Before(offers[j].Outbound.Departure)
			}
			return offers[i].Outbound.Departure.After(offers[j].Outbound.Departure)
		})
	default:
		// price
		sort.SliceStable(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].Price < offers[j].Price
			}
			return offers[i].Price > offers[j].Price
		})
	}

	return offers
}
