package service

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/flight"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/utils"
)

var categoryLabels = map[dto.Category]string{
	dto.CategoryFastest:     "Fastest Flight",
	dto.CategoryCheapest:    "Cheapest Flight",
	dto.CategoryBestOneStop: "Best One-Stop Flight",
}

// compose turns one alert event into notification subject and body. The
// core only decides plain-text content; rendering beyond that belongs to
// the transport.
func (s *TrackerService) compose(event dto.AlertEvent, categories flight.Categories,
	offers []dto.Offer) (string, string) {
	if event.Kind == dto.AlertSummary {
		return s.composeSummary(categories, offers)
	}

	return s.composeDrop(event, categories)
}

func (s *TrackerService) composeSummary(categories flight.Categories,
	offers []dto.Offer) (string, string) {
	subject := fmt.Sprintf("%s → %s fares for %s: cheapest %s",
		s.Trip.Origin, s.Trip.Destination, s.Trip.OutboundDate,
		utils.FormatINR(int64(categories.Cheapest.Price)))

	var body strings.Builder
	fmt.Fprintf(&body, "Daily fare summary for %s → %s on %s\n\n",
		s.Trip.Origin, s.Trip.Destination, s.Trip.OutboundDate)

	table := tablewriter.NewWriter(&body)
	table.Header("Category", "Price", "Airline", "Stops", "Duration")
	for _, category := range []dto.Category{dto.CategoryFastest, dto.CategoryCheapest, dto.CategoryBestOneStop} {
		offer := categories.Offer(category)
		if offer == nil {
			table.Append(categoryLabels[category], "-", "-", "-", "-")
			continue
		}
		table.Append(
			categoryLabels[category],
			utils.FormatINR(int64(offer.Price)),
			offer.Airline,
			fmt.Sprintf("%d", offer.Outbound.StopCount),
			utils.ConvertMinutesToDuration(int64(offer.TotalDurationMinutes)),
		)
	}
	table.Render()

	fmt.Fprintf(&body, "\nOffers within budget: %d\n", len(offers))

	return subject, body.String()
}

func (s *TrackerService) composeDrop(event dto.AlertEvent,
	categories flight.Categories) (string, string) {
	label := categoryLabels[event.Category]
	drop := event.OldPrice - event.NewPrice

	subject := fmt.Sprintf("Price drop: %s %s → %s now %s (was %s)",
		label, s.Trip.Origin, s.Trip.Destination,
		utils.FormatINR(int64(event.NewPrice)),
		utils.FormatINR(int64(event.OldPrice)))

	var body strings.Builder
	fmt.Fprintf(&body, "%s for %s → %s on %s dropped by %s.\n\n",
		label, s.Trip.Origin, s.Trip.Destination, s.Trip.OutboundDate,
		utils.FormatINR(int64(drop)))
	fmt.Fprintf(&body, "Old price: %s\n", utils.FormatINR(int64(event.OldPrice)))
	fmt.Fprintf(&body, "New price: %s\n", utils.FormatINR(int64(event.NewPrice)))

	if offer := categories.Offer(event.Category); offer != nil {
		fmt.Fprintf(&body, "\nAirline: %s (%s) via %s\n",
			offer.Airline, offer.AirlineCode, offer.Source)
		fmt.Fprintf(&body, "Departs %s, %s, %d stop(s)\n",
			offer.Outbound.Departure.Format("Mon 02 Jan 15:04"),
			utils.ConvertMinutesToDuration(int64(offer.TotalDurationMinutes)),
			offer.Outbound.StopCount)
		if offer.RefundablePrice != nil {
			fmt.Fprintf(&body, "Refundable fare (est.): %s\n",
				utils.FormatINR(int64(*offer.RefundablePrice)))
		}
	}

	return subject, body.String()
}
