package flight

import (
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
)

// DecideAlerts compares the current categorization against today's
// baseline and mutates the baseline according to the run mode.
//
// Daily-summary runs emit exactly one summary event and reset every
// baseline to the current price, even upward. Routine runs emit one
// price-drop event per category whose price fell by at least
// dropThreshold, and ratchet that baseline down; everything else is left
// untouched. Event order is fixed: fastest, cheapest, best one-stop.
func DecideAlerts(entry *DayPrices, current Categories, dailySummary bool, dropThreshold int) []dto.AlertEvent {
	if dailySummary {
		entry.Fastest = current.Fastest.Price
		entry.Cheapest = current.Cheapest.Price
		entry.BestOneStop = nil
		if current.BestOneStop != nil {
			price := current.BestOneStop.Price
			entry.BestOneStop = &price
		}

		return []dto.AlertEvent{{Kind: dto.AlertSummary}}
	}

	var events []dto.AlertEvent

	if event, ok := checkDrop(dto.CategoryFastest, &entry.Fastest, current.Fastest.Price, dropThreshold); ok {
		events = append(events, event)
	}

	if event, ok := checkDrop(dto.CategoryCheapest, &entry.Cheapest, current.Cheapest.Price, dropThreshold); ok {
		events = append(events, event)
	}

	// best one-stop participates only when present on both sides
	if entry.BestOneStop != nil && current.BestOneStop != nil {
		if event, ok := checkDrop(dto.CategoryBestOneStop, entry.BestOneStop,
			current.BestOneStop.Price, dropThreshold); ok {
			events = append(events, event)
		}
	}

	return events
}

// checkDrop lowers the baseline and reports an event when the price fell
// by at least threshold. The baseline never moves up here.
func checkDrop(category dto.Category, baseline *int, currentPrice int, threshold int) (dto.AlertEvent, bool) {
	drop := *baseline - currentPrice
	if drop < threshold {
		return dto.AlertEvent{}, false
	}

	event := dto.AlertEvent{
		Kind:     dto.AlertPriceDrop,
		Category: category,
		OldPrice: *baseline,
		NewPrice: currentPrice,
	}
	*baseline = currentPrice

	return event, true
}
