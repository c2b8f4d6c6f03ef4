//go:build unit

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/flight"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/notifier"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name   string
	offers []dto.Offer
	err    error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Search(_ context.Context) ([]dto.Offer, error) {
	return p.offers, p.err
}

type memoryStore struct {
	history flight.PriceHistory
	saveErr error
	saved   int
}

func (m *memoryStore) Load(_ context.Context) flight.PriceHistory {
	return m.history
}

func (m *memoryStore) Save(_ context.Context, history flight.PriceHistory) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.history = history
	m.saved++
	return nil
}

type recordingNotifier struct {
	subjects []string
	bodies   []string
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Notify(_ context.Context, subject, body string) error {
	r.subjects = append(r.subjects, subject)
	r.bodies = append(r.bodies, body)
	return nil
}

var _ notifier.Notifier = (*recordingNotifier)(nil)

func testTrip() offerprovider.Trip {
	return offerprovider.Trip{
		Origin:       "DEL",
		Destination:  "GOI",
		OutboundDate: "2026-11-20",
		ReturnDate:   "2026-11-24",
	}
}

func testCriteria() dto.FilterCriteria {
	return dto.FilterCriteria{
		MaxBudget:             10000,
		EarliestOutboundHour:  0,
		ReturnWindowStartHour: 0,
		ReturnWindowEndHour:   24,
		MaxStops:              2,
	}
}

func testOffer(id string, price, durationMinutes, stops int) dto.Offer {
	return dto.Offer{
		ID:          id,
		Airline:     "IndiGo",
		AirlineCode: "6E",
		Price:       price,
		Outbound: dto.Leg{
			Departure:       time.Date(2026, 11, 20, 9, 0, 0, 0, time.UTC),
			DurationMinutes: durationMinutes,
			StopCount:       stops,
		},
		TotalDurationMinutes: durationMinutes,
	}
}

func newService(registry *offerprovider.Registry, store *memoryStore,
	sink *recordingNotifier, threshold int) *TrackerService {
	svc := NewTrackerService(registry, store, []notifier.Notifier{sink},
		testTrip(), testCriteria(), threshold)
	svc.now = func() time.Time {
		return time.Date(2026, 11, 18, 11, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestTrackerService_Run_RoutineCheckDropScenario(t *testing.T) {
	// two providers, three offers each, one of each outside budget
	registry := offerprovider.NewRegistry()
	registry.AddProvider("a", &stubProvider{name: "a", offers: []dto.Offer{
		testOffer("a1", 6900, 180, 1),
		testOffer("a2", 8200, 150, 0),
		testOffer("a3", 14000, 140, 0),
	}})
	registry.AddProvider("b", &stubProvider{name: "b", offers: []dto.Offer{
		testOffer("b1", 7400, 160, 0),
		testOffer("b2", 9100, 120, 0),
		testOffer("b3", 11000, 130, 0),
	}})

	// baseline sits 400 above the current cheapest so only Cheapest drops
	store := &memoryStore{history: flight.PriceHistory{
		Daily: []flight.DayPrices{
			{Date: "2026-11-18", Fastest: 8200, Cheapest: 7300},
		},
	}}
	sink := &recordingNotifier{}

	svc := newService(registry, store, sink, 300)

	result, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 6, result.OffersFetched)
	assert.Equal(t, 4, result.OffersKept)
	assert.Equal(t, 0, result.ProvidersFailed)

	require.Len(t, result.Alerts, 1)
	alert := result.Alerts[0]
	assert.Equal(t, dto.AlertPriceDrop, alert.Kind)
	assert.Equal(t, dto.CategoryCheapest, alert.Category)
	assert.Equal(t, 7300, alert.OldPrice)
	assert.Equal(t, 6900, alert.NewPrice)

	require.Len(t, sink.subjects, 1)
	assert.Contains(t, sink.subjects[0], "Cheapest Flight")
	assert.Contains(t, sink.bodies[0], "Old price")

	// baseline ratcheted down and persisted
	require.Equal(t, 1, store.saved)
	entry := store.history.Entry("2026-11-18")
	require.NotNil(t, entry)
	assert.Equal(t, 6900, entry.Cheapest)
	assert.Equal(t, 8200, entry.Fastest)
	require.NotNil(t, store.history.LastChecked)
}

func TestTrackerService_Run_DailySummary(t *testing.T) {
	registry := offerprovider.NewRegistry()
	registry.AddProvider("a", &stubProvider{name: "a", offers: []dto.Offer{
		testOffer("a1", 9000, 150, 0),
	}})

	// current prices are above the stored baseline; summary still resets
	store := &memoryStore{history: flight.PriceHistory{
		Daily: []flight.DayPrices{
			{Date: "2026-11-18", Fastest: 8000, Cheapest: 8000},
		},
	}}
	sink := &recordingNotifier{}

	svc := newService(registry, store, sink, 300)

	result, err := svc.Run(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, dto.AlertSummary, result.Alerts[0].Kind)

	entry := store.history.Entry("2026-11-18")
	require.NotNil(t, entry)
	assert.Equal(t, 9000, entry.Fastest)
	assert.Equal(t, 9000, entry.Cheapest)

	require.Len(t, sink.subjects, 1)
	assert.True(t, strings.HasPrefix(sink.subjects[0], "DEL → GOI"),
		"unexpected subject %q", sink.subjects[0])
	assert.Contains(t, sink.bodies[0], "Cheapest Flight")
}

func TestTrackerService_Run_ProviderFailureDegrades(t *testing.T) {
	registry := offerprovider.NewRegistry()
	registry.AddProvider("good", &stubProvider{name: "good", offers: []dto.Offer{
		testOffer("g1", 7000, 150, 0),
	}})
	registry.AddProvider("bad", &stubProvider{name: "bad", err: errors.New("boom")})

	store := &memoryStore{}
	sink := &recordingNotifier{}

	svc := newService(registry, store, sink, 300)

	result, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProvidersFailed)
	assert.Equal(t, 1, result.OffersKept)
	// first run of the date seeds the baseline, so no drop alert
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 1, store.saved)
}

func TestTrackerService_Run_NoOffersSkipsAlerts(t *testing.T) {
	registry := offerprovider.NewRegistry()
	registry.AddProvider("empty", &stubProvider{name: "empty"})

	store := &memoryStore{}
	sink := &recordingNotifier{}

	svc := newService(registry, store, sink, 300)

	result, err := svc.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Empty(t, result.Alerts)
	assert.Empty(t, sink.subjects)
	// LastChecked is still stamped and persisted
	require.NotNil(t, store.history.LastChecked)
	assert.Empty(t, store.history.Daily)
}

func TestTrackerService_Run_SaveFailureIsNotFatal(t *testing.T) {
	registry := offerprovider.NewRegistry()
	registry.AddProvider("a", &stubProvider{name: "a", offers: []dto.Offer{
		testOffer("a1", 7000, 150, 0),
	}})

	store := &memoryStore{saveErr: errors.New("disk full")}
	sink := &recordingNotifier{}

	svc := newService(registry, store, sink, 300)

	_, err := svc.Run(context.Background(), false)
	assert.NoError(t, err)
}
