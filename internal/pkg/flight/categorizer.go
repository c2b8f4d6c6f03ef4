package flight

import (
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
)

// Categories holds the representative offer per tracked category.
// BestOneStop is nil when no offer has exactly one stop on either leg.
type Categories struct {
	Fastest     dto.Offer
	Cheapest    dto.Offer
	BestOneStop *dto.Offer
}

// Offer returns the category's winning offer, or nil when absent.
func (c Categories) Offer(category dto.Category) *dto.Offer {
	switch category {
	case dto.CategoryFastest:
		return &c.Fastest
	case dto.CategoryCheapest:
		return &c.Cheapest
	case dto.CategoryBestOneStop:
		return c.BestOneStop
	}
	return nil
}

// Categorize runs the three independent reductions over the filtered set.
// The same offer may win more than one category. Ties break in favor of
// the first offer encountered. ok is false when offers is empty.
func Categorize(offers []dto.Offer) (Categories, bool) {
	if len(offers) == 0 {
		return Categories{}, false
	}

	categories := Categories{
		Fastest: offers[minIndexOf(offers, nonStopOutboundSubset(offers), func(o dto.Offer) int {
			return o.TotalDurationMinutes
		})],
		Cheapest: offers[minIndexOf(offers, indexAll(offers), func(o dto.Offer) int {
			return o.Price
		})],
	}

	if oneStop := oneStopSubset(offers); len(oneStop) > 0 {
		best := offers[minIndexOf(offers, oneStop, func(o dto.Offer) int {
			return o.Price
		})]
		categories.BestOneStop = &best
	}

	return categories, true
}

// nonStopOutboundSubset returns indexes of offers with a non-stop
// outbound leg, or all indexes when none qualify.
func nonStopOutboundSubset(offers []dto.Offer) []int {
	var indexes []int
	for i, offer := range offers {
		if offer.Outbound.StopCount == 0 {
			indexes = append(indexes, i)
		}
	}

	if len(indexes) == 0 {
		return indexAll(offers)
	}

	return indexes
}

func oneStopSubset(offers []dto.Offer) []int {
	var indexes []int
	for i, offer := range offers {
		if offer.Outbound.StopCount == 1 ||
			(offer.Return != nil && offer.Return.StopCount == 1) {
			indexes = append(indexes, i)
		}
	}

	return indexes
}

func indexAll(offers []dto.Offer) []int {
	indexes := make([]int, len(offers))
	for i := range offers {
		indexes[i] = i
	}

	return indexes
}

// minIndexOf scans candidate indexes in order and returns the index with
// the minimum value. First encountered wins on ties.
func minIndexOf(offers []dto.Offer, indexes []int, value func(dto.Offer) int) int {
	best := indexes[0]
	for _, i := range indexes[1:] {
		if value(offers[i]) < value(offers[best]) {
			best = i
		}
	}

	return best
}
