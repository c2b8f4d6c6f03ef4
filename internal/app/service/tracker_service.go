package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/flight"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/logger"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/notifier"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider"
)

type HistoryStorer interface {
	Load(ctx context.Context) flight.PriceHistory
	Save(ctx context.Context, history flight.PriceHistory) error
}

type providerResult struct {
	Provider string
	Offers   []dto.Offer
	Error    error
}

type TrackerService struct {
	Registry      *offerprovider.Registry
	History       HistoryStorer
	Notifiers     []notifier.Notifier
	Trip          offerprovider.Trip
	Criteria      dto.FilterCriteria
	DropThreshold int

	// now is swappable in tests.
	now func() time.Time
}

func NewTrackerService(registry *offerprovider.Registry, history HistoryStorer,
	notifiers []notifier.Notifier, trip offerprovider.Trip,
	criteria dto.FilterCriteria, dropThreshold int) *TrackerService {
	return &TrackerService{
		Registry:      registry,
		History:       history,
		Notifiers:     notifiers,
		Trip:          trip,
		Criteria:      criteria,
		DropThreshold: dropThreshold,
		now:           time.Now,
	}
}

// Run executes one tracking pass: fetch from all providers, filter,
// categorize, decide alerts against today's baseline, notify, persist.
// Provider and notification failures degrade and are logged; only
// unexpected orchestration failures return an error.
func (s *TrackerService) Run(ctx context.Context, dailySummary bool) (dto.RunResult, error) {
	ctx = context.WithValue(ctx, logger.RunIDKey, uuid.New().String())

	result := dto.RunResult{DailySummary: dailySummary}

	offers, failedProviders := s.fetchOffers(ctx)
	result.OffersFetched = len(offers)
	result.ProvidersFailed = failedProviders

	kept := flight.FilterOffers(offers, s.Criteria)
	kept = flight.SortOffers(kept, "price", "asc")
	result.OffersKept = len(kept)

	slog.InfoContext(ctx, "offers collected",
		slog.Int("fetched", result.OffersFetched),
		slog.Int("kept", result.OffersKept),
		slog.Int("providers_failed", failedProviders))

	history := s.History.Load(ctx)
	now := s.now()

	categories, ok := flight.Categorize(kept)
	if !ok {
		slog.WarnContext(ctx, "no offers matched the criteria, skipping alerts")
		s.persist(ctx, &history, now)
		return result, nil
	}

	today := now.Format("2006-01-02")
	entry := flight.GetOrCreateToday(&history, today, categories)

	events := flight.DecideAlerts(entry, categories, dailySummary, s.DropThreshold)
	result.Alerts = events

	for _, event := range events {
		subject, body := s.compose(event, categories, kept)
		s.notifyAll(ctx, subject, body)
	}

	s.persist(ctx, &history, now)

	return result, nil
}

// fetchOffers concurrently calls all registered providers. A failed
// provider degrades to an empty offer set so partial outages never
// abort the run.
func (s *TrackerService) fetchOffers(ctx context.Context) ([]dto.Offer, int) {
	providers := s.Registry.GetAllProviders()
	results := make(chan providerResult, len(providers))
	var wg sync.WaitGroup

	wg.Add(len(providers))
	for key, provider := range providers {
		go func(key string, p offerprovider.OfferProvider) {
			defer wg.Done()
			offers, err := p.Search(ctx)
			results <- providerResult{
				Provider: key,
				Offers:   offers,
				Error:    err,
			}
		}(key, provider)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	failedProviders := 0
	var allOffers []dto.Offer
	for result := range results {
		if result.Error != nil {
			slog.WarnContext(ctx, "provider failed, continuing without it",
				slog.String("provider", result.Provider),
				slog.Any("error", result.Error))
			failedProviders++
			continue
		}
		allOffers = append(allOffers, result.Offers...)
	}

	return allOffers, failedProviders
}

func (s *TrackerService) notifyAll(ctx context.Context, subject, body string) {
	for _, n := range s.Notifiers {
		if err := n.Notify(ctx, subject, body); err != nil {
			slog.ErrorContext(ctx, "notification failed",
				slog.String("channel", n.Name()),
				slog.String("subject", subject),
				slog.Any("error", err))
		}
	}
}

func (s *TrackerService) persist(ctx context.Context, history *flight.PriceHistory, now time.Time) {
	history.LastChecked = &now

	if err := s.History.Save(ctx, *history); err != nil {
		slog.ErrorContext(ctx, "failed to persist price history",
			slog.Any("error", err))
	}
}
