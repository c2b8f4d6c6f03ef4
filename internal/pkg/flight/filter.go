package flight

import (
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
)

// FilterOffers keeps offers that pass every criteria rule. The rules are
// independent predicates; output order follows input order but callers
// sort explicitly when they need a particular order.
func FilterOffers(offers []dto.Offer, criteria dto.FilterCriteria) []dto.Offer {
	results := make([]dto.Offer, 0, len(offers))

	for _, offer := range offers {
		if offer.Price <= 0 || offer.Price > criteria.MaxBudget {
			continue
		}

		if isExcludedAirline(criteria.ExcludedAirlines, offer.AirlineCode) {
			continue
		}

		if !offer.Outbound.Departure.IsZero() &&
			offer.Outbound.Departure.Hour() < criteria.EarliestOutboundHour {
			continue
		}

		if offer.Return != nil && !offer.Return.Departure.IsZero() {
			hour := offer.Return.Departure.Hour()
			if hour < criteria.ReturnWindowStartHour || hour >= criteria.ReturnWindowEndHour {
				continue
			}
		}

		if offer.Outbound.StopCount > criteria.MaxStops {
			continue
		}

		if offer.Return != nil && offer.Return.StopCount > criteria.MaxStops {
			continue
		}

		results = append(results, offer)
	}

	return results
}

func isExcludedAirline(excluded []string, code string) bool {
	for _, excludedCode := range excluded {
		if excludedCode == code {
			return true
		}
	}

	return false
}
