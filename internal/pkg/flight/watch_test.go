package flight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func TestDecideAlerts_RoutineCheck(t *testing.T) {
	current := func(fastest, cheapest int, oneStop *int) Categories {
		c := Categories{
			Fastest:  dto.Offer{Price: fastest},
			Cheapest: dto.Offer{Price: cheapest},
		}
		if oneStop != nil {
			c.BestOneStop = &dto.Offer{Price: *oneStop}
		}
		return c
	}

	t.Run("drop_at_threshold_alerts_and_ratchets", func(t *testing.T) {
		entry := &DayPrices{Date: "2026-11-20", Fastest: 10000, Cheapest: 10000}

		events := DecideAlerts(entry, current(10000, 9700, nil), false, 300)

		want := []dto.AlertEvent{
			{Kind: dto.AlertPriceDrop, Category: dto.CategoryCheapest, OldPrice: 10000, NewPrice: 9700},
		}
		diff := cmp.Diff(want, events)
		if diff != "" {
			t.Fatalf("DecideAlerts mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 9700, entry.Cheapest)
		assert.Equal(t, 10000, entry.Fastest)
	})

	t.Run("drop_below_threshold_leaves_baseline", func(t *testing.T) {
		entry := &DayPrices{Date: "2026-11-20", Fastest: 10000, Cheapest: 10000}

		events := DecideAlerts(entry, current(10000, 9750, nil), false, 300)

		assert.Empty(t, events)
		assert.Equal(t, 10000, entry.Cheapest)
	})

	t.Run("price_rise_never_moves_baseline", func(t *testing.T) {
		entry := &DayPrices{Date: "2026-11-20", Fastest: 8000, Cheapest: 8000}

		events := DecideAlerts(entry, current(9000, 9000, nil), false, 300)

		assert.Empty(t, events)
		assert.Equal(t, 8000, entry.Fastest)
		assert.Equal(t, 8000, entry.Cheapest)
	})

	t.Run("multiple_categories_alert_in_fixed_order", func(t *testing.T) {
		oneStopBaseline := 9000
		entry := &DayPrices{
			Date: "2026-11-20", Fastest: 10000, Cheapest: 9500,
			BestOneStop: &oneStopBaseline,
		}
		oneStopNow := 8500

		events := DecideAlerts(entry, current(9400, 9000, &oneStopNow), false, 500)

		want := []dto.AlertEvent{
			{Kind: dto.AlertPriceDrop, Category: dto.CategoryFastest, OldPrice: 10000, NewPrice: 9400},
			{Kind: dto.AlertPriceDrop, Category: dto.CategoryCheapest, OldPrice: 9500, NewPrice: 9000},
			{Kind: dto.AlertPriceDrop, Category: dto.CategoryBestOneStop, OldPrice: 9000, NewPrice: 8500},
		}
		diff := cmp.Diff(want, events)
		if diff != "" {
			t.Fatalf("DecideAlerts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("one_stop_skipped_when_baseline_absent", func(t *testing.T) {
		entry := &DayPrices{Date: "2026-11-20", Fastest: 10000, Cheapest: 10000}
		oneStopNow := 5000

		events := DecideAlerts(entry, current(10000, 10000, &oneStopNow), false, 300)

		assert.Empty(t, events)
		assert.Nil(t, entry.BestOneStop)
	})
}

func TestDecideAlerts_DailySummary(t *testing.T) {
	t.Run("resets_baseline_even_upward", func(t *testing.T) {
		entry := &DayPrices{Date: "2026-11-20", Fastest: 8000, Cheapest: 8000}
		current := Categories{
			Fastest:  dto.Offer{Price: 9000},
			Cheapest: dto.Offer{Price: 9000},
		}

		events := DecideAlerts(entry, current, true, 300)

		assert.Equal(t, []dto.AlertEvent{{Kind: dto.AlertSummary}}, events)
		assert.Equal(t, 9000, entry.Fastest)
		assert.Equal(t, 9000, entry.Cheapest)
	})

	t.Run("clears_one_stop_baseline_when_category_absent", func(t *testing.T) {
		oneStop := 7000
		entry := &DayPrices{Date: "2026-11-20", Fastest: 8000, Cheapest: 8000, BestOneStop: &oneStop}
		current := Categories{
			Fastest:  dto.Offer{Price: 8000},
			Cheapest: dto.Offer{Price: 8000},
		}

		DecideAlerts(entry, current, true, 300)

		assert.Nil(t, entry.BestOneStop)
	})
}
