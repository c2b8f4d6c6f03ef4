package dto

import (
	"fmt"
	"time"
)

// Category names one of the tracked fare buckets.
type Category string

const (
	CategoryFastest     Category = "fastest"
	CategoryCheapest    Category = "cheapest"
	CategoryBestOneStop Category = "best_one_stop"
)

// Leg is one direction of travel within an offer.
type Leg struct {
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DurationMinutes int       `json:"duration_minutes"`
	StopCount       int       `json:"stop_count"`
}

// Offer is a normalized flight itinerary candidate from one provider.
type Offer struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Airline     string `json:"airline"`
	AirlineCode string `json:"airline_code"`
	// Price is in whole rupees. Offers with Price <= 0 never pass the filter.
	Price int `json:"price"`
	// RefundablePrice is only set by providers that model refundability
	// as a markup on the base fare.
	RefundablePrice *int `json:"refundable_price,omitempty"`
	Outbound        Leg  `json:"outbound"`
	Return          *Leg `json:"return,omitempty"`
	// TotalDurationMinutes is the sum over legs present.
	TotalDurationMinutes int `json:"total_duration_minutes"`
}

// FilterCriteria is the immutable per-run filter configuration.
// The return window is half-open: [start, end).
type FilterCriteria struct {
	MaxBudget             int      `json:"max_budget" validate:"gt=0"`
	EarliestOutboundHour  int      `json:"earliest_outbound_hour" validate:"gte=0,lte=23"`
	ReturnWindowStartHour int      `json:"return_window_start_hour" validate:"gte=0,lte=23"`
	ReturnWindowEndHour   int      `json:"return_window_end_hour" validate:"gte=0,lte=24"`
	MaxStops              int      `json:"max_stops" validate:"gte=0"`
	ExcludedAirlines      []string `json:"excluded_airlines"`
}

func (c FilterCriteria) Validate() error {
	if err := ValidateSingleError(c); err != nil {
		return err
	}

	if c.ReturnWindowEndHour <= c.ReturnWindowStartHour {
		return fmt.Errorf("return_window_end_hour must be greater than return_window_start_hour")
	}

	return nil
}

type AlertKind string

const (
	AlertSummary   AlertKind = "summary"
	AlertPriceDrop AlertKind = "price_drop"
)

// AlertEvent is one decision produced by the drop engine. Price-drop
// events are bound to exactly one category; the summary event covers
// all categories and leaves Category empty.
type AlertEvent struct {
	Kind     AlertKind `json:"kind"`
	Category Category  `json:"category,omitempty"`
	OldPrice int       `json:"old_price,omitempty"`
	NewPrice int       `json:"new_price,omitempty"`
}

// RunResult summarizes one tracker run for logging and exit reporting.
type RunResult struct {
	OffersFetched   int          `json:"offers_fetched"`
	OffersKept      int          `json:"offers_kept"`
	ProvidersFailed int          `json:"providers_failed"`
	DailySummary    bool         `json:"daily_summary"`
	Alerts          []AlertEvent `json:"alerts"`
}
