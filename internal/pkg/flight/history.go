package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/exception"
)

// DayPrices is the baseline price per category for one calendar date.
// Baselines only move down via drop detection; the daily summary resets
// them unconditionally.
type DayPrices struct {
	Date        string `json:"date"`
	Fastest     int    `json:"fastest"`
	Cheapest    int    `json:"cheapest"`
	BestOneStop *int   `json:"best_one_stop"`
}

// PriceHistory is the whole persisted ledger, ordered by date. A single
// run owns it exclusively between Load and Save.
type PriceHistory struct {
	LastChecked *time.Time  `json:"last_checked_at"`
	Daily       []DayPrices `json:"daily"`
}

// Entry returns a pointer into Daily for the given date, or nil.
func (h *PriceHistory) Entry(date string) *DayPrices {
	for i := range h.Daily {
		if h.Daily[i].Date == date {
			return &h.Daily[i]
		}
	}

	return nil
}

// GetOrCreateToday returns today's entry, appending one seeded from the
// current categorization when the date has not been seen. The seeded
// entry becomes the day's baseline.
func GetOrCreateToday(history *PriceHistory, date string, current Categories) *DayPrices {
	if entry := history.Entry(date); entry != nil {
		return entry
	}

	entry := DayPrices{
		Date:     date,
		Fastest:  current.Fastest.Price,
		Cheapest: current.Cheapest.Price,
	}
	if current.BestOneStop != nil {
		price := current.BestOneStop.Price
		entry.BestOneStop = &price
	}

	history.Daily = append(history.Daily, entry)

	return &history.Daily[len(history.Daily)-1]
}

// HistoryStore reads and writes the whole price history file.
type HistoryStore struct {
	path string
}

func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Load returns the persisted history. A missing file yields an empty
// history; a corrupt file is logged and reset rather than propagated.
func (s *HistoryStore) Load(ctx context.Context) PriceHistory {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "cannot read price history, starting fresh",
				slog.String("path", s.path),
				slog.String("error", err.Error()))
		}
		return PriceHistory{}
	}

	var history PriceHistory
	if err := json.Unmarshal(data, &history); err != nil {
		slog.ErrorContext(ctx, "price history file is corrupt, resetting",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return PriceHistory{}
	}

	return history
}

// Save overwrites the history file. The write goes to a temp file first
// so a crash mid-write never leaves a truncated ledger.
func (s *HistoryStore) Save(_ context.Context, history PriceHistory) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return exception.ApplicationError{
			Kind:    exception.KindStorage,
			Message: "marshal price history",
			Cause:   err,
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exception.ApplicationError{
				Kind:    exception.KindStorage,
				Message: fmt.Sprintf("create history directory %s", dir),
				Cause:   err,
			}
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return exception.ApplicationError{
			Kind:    exception.KindStorage,
			Message: "write price history temp file",
			Cause:   err,
		}
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return exception.ApplicationError{
			Kind:    exception.KindStorage,
			Message: "replace price history file",
			Cause:   err,
		}
	}

	return nil
}
