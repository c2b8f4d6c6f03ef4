package kiwi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider"
	"golang.org/x/time/rate"
)

const (
	ProviderName = "Kiwi"

	searchPath = "/v2/search"
)

// Provider searches one-way fares only; the tracked return leg is out of
// scope for this source. Refundability is modeled as a markup on the base
// fare rather than an explicit flag.
type Provider struct {
	name             string
	baseURL          string
	apiKey           string
	trip             offerprovider.Trip
	refundableMarkup float64
	client           *http.Client
	limiter          *rate.Limiter
}

func NewProvider(config offerprovider.ProviderConfig, trip offerprovider.Trip,
	apiKey string, refundableMarkup float64) *Provider {
	return &Provider{
		name:             ProviderName,
		baseURL:          config.BaseURL,
		apiKey:           apiKey,
		trip:             trip,
		refundableMarkup: refundableMarkup,
		client:           config.Client(),
		limiter:          config.Limiter(),
	}
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) Search(ctx context.Context) ([]dto.Offer, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", offerprovider.ErrRateLimitExceeded, err)
	}

	query := url.Values{}
	query.Set("fly_from", p.trip.Origin)
	query.Set("fly_to", p.trip.Destination)
	query.Set("date_from", p.trip.OutboundDate)
	query.Set("date_to", p.trip.OutboundDate)
	query.Set("curr", "INR")
	query.Set("limit", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call kiwi search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, offerprovider.ErrProviderAuth
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", offerprovider.ErrProviderUnavailable, resp.StatusCode)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode kiwi response: %w", err)
	}

	return p.toOffers(ctx, response.Data), nil
}

func (p *Provider) toOffers(ctx context.Context, raw []rawOffer) []dto.Offer {
	results := make([]dto.Offer, 0, len(raw))

	for _, record := range raw {
		offer, err := p.toOffer(record)
		if err != nil {
			slog.WarnContext(ctx, "dropping malformed kiwi offer",
				slog.String("offer_id", record.ID),
				slog.String("error", err.Error()))
			continue
		}

		results = append(results, offer)
	}

	return results
}

func (p *Provider) toOffer(raw rawOffer) (dto.Offer, error) {
	departure, err := time.Parse(time.RFC3339, raw.LocalDeparture)
	if err != nil {
		return dto.Offer{}, fmt.Errorf("parse departure %q: %w", raw.LocalDeparture, err)
	}

	arrival, err := time.Parse(time.RFC3339, raw.LocalArrival)
	if err != nil {
		return dto.Offer{}, fmt.Errorf("parse arrival %q: %w", raw.LocalArrival, err)
	}

	if len(raw.Route) == 0 {
		return dto.Offer{}, fmt.Errorf("offer has no route segments")
	}

	price := int(math.Round(raw.Price))
	refundable := int(math.Round(raw.Price * (1 + p.refundableMarkup)))

	code := raw.Route[0].Airline
	if len(raw.Airlines) > 0 {
		code = raw.Airlines[0]
	}

	durationMinutes := raw.Duration.Total / 60

	return dto.Offer{
		ID:              fmt.Sprintf("%s_%s", raw.ID, p.name),
		Source:          p.name,
		Airline:         offerprovider.AirlineName(code),
		AirlineCode:     code,
		Price:           price,
		RefundablePrice: &refundable,
		Outbound: dto.Leg{
			Departure:       departure,
			Arrival:         arrival,
			DurationMinutes: durationMinutes,
			StopCount:       len(raw.Route) - 1,
		},
		TotalDurationMinutes: durationMinutes,
	}, nil
}
