package flight

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStore_LoadMissingFile(t *testing.T) {
	store := NewHistoryStore(filepath.Join(t.TempDir(), "missing.json"))

	got := store.Load(context.Background())

	assert.Nil(t, got.LastChecked)
	assert.Empty(t, got.Daily)
}

func TestHistoryStore_LoadCorruptFileResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewHistoryStore(path)
	got := store.Load(context.Background())

	assert.Empty(t, got.Daily)
}

func TestHistoryStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	store := NewHistoryStore(path)
	ctx := context.Background()

	checked := time.Date(2026, 11, 20, 9, 30, 0, 0, time.UTC)
	oneStop := 7200
	history := PriceHistory{
		LastChecked: &checked,
		Daily: []DayPrices{
			{Date: "2026-11-20", Fastest: 8500, Cheapest: 6900, BestOneStop: &oneStop},
			{Date: "2026-11-21", Fastest: 9000, Cheapest: 7100, BestOneStop: nil},
		},
	}

	require.NoError(t, store.Save(ctx, history))

	loaded := store.Load(ctx)
	diff := cmp.Diff(history, loaded)
	if diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}

	// serialization is idempotent: save(load()) twice yields identical bytes
	require.NoError(t, store.Save(ctx, loaded))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, store.Load(ctx)))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGetOrCreateToday(t *testing.T) {
	current := Categories{
		Fastest:  dto.Offer{Price: 8500},
		Cheapest: dto.Offer{Price: 6900},
		BestOneStop: &dto.Offer{
			Price: 7200,
		},
	}

	t.Run("creates_baseline_on_new_date", func(t *testing.T) {
		history := PriceHistory{}

		entry := GetOrCreateToday(&history, "2026-11-20", current)

		assert.Equal(t, "2026-11-20", entry.Date)
		assert.Equal(t, 8500, entry.Fastest)
		assert.Equal(t, 6900, entry.Cheapest)
		if assert.NotNil(t, entry.BestOneStop) {
			assert.Equal(t, 7200, *entry.BestOneStop)
		}
		assert.Len(t, history.Daily, 1)
	})

	t.Run("returns_existing_entry_untouched", func(t *testing.T) {
		history := PriceHistory{
			Daily: []DayPrices{{Date: "2026-11-20", Fastest: 9999, Cheapest: 9999}},
		}

		entry := GetOrCreateToday(&history, "2026-11-20", current)

		assert.Equal(t, 9999, entry.Cheapest)
		assert.Len(t, history.Daily, 1)
	})

	t.Run("mutations_reach_the_history", func(t *testing.T) {
		history := PriceHistory{}

		entry := GetOrCreateToday(&history, "2026-11-20", current)
		entry.Cheapest = 6500

		assert.Equal(t, 6500, history.Daily[0].Cheapest)
	})

	t.Run("best_one_stop_nil_when_absent", func(t *testing.T) {
		history := PriceHistory{}
		noOneStop := Categories{
			Fastest:  dto.Offer{Price: 8500},
			Cheapest: dto.Offer{Price: 6900},
		}

		entry := GetOrCreateToday(&history, "2026-11-20", noOneStop)

		assert.Nil(t, entry.BestOneStop)
	})
}
