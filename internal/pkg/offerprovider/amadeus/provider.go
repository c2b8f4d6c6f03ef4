package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/utils"
	"golang.org/x/time/rate"
)

const (
	ProviderName = "Amadeus"

	tokenPath  = "/v1/security/oauth2/token"
	searchPath = "/v2/shopping/flight-offers"
)

type Provider struct {
	name         string
	baseURL      string
	clientID     string
	clientSecret string
	trip         offerprovider.Trip
	client       *http.Client
	limiter      *rate.Limiter

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewProvider(config offerprovider.ProviderConfig, trip offerprovider.Trip,
	clientID, clientSecret string) *Provider {
	return &Provider{
		name:         ProviderName,
		baseURL:      config.BaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		trip:         trip,
		client:       config.Client(),
		limiter:      config.Limiter(),
	}
}

func (p *Provider) Name() string {
	return p.name
}

// Search queries the flight-offers API for the configured itinerary and
// returns the offers that survived normalization. Malformed records are
// dropped, not fatal; a response without the data container yields an
// empty slice.
func (p *Provider) Search(ctx context.Context) ([]dto.Offer, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", offerprovider.ErrRateLimitExceeded, err)
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus auth: %w", err)
	}

	query := url.Values{}
	query.Set("originLocationCode", p.trip.Origin)
	query.Set("destinationLocationCode", p.trip.Destination)
	query.Set("departureDate", p.trip.OutboundDate)
	if p.trip.ReturnDate != "" {
		query.Set("returnDate", p.trip.ReturnDate)
	}
	query.Set("adults", "1")
	query.Set("currencyCode", "INR")
	query.Set("max", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call amadeus search API: %w", err)
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
		return nil, fmt.Errorf("decode amadeus response: %w", err)
	}

	return p.toOffers(ctx, response.Data), nil
}

func (p *Provider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExpiry.Add(-30*time.Second)) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call amadeus token API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token status %d", offerprovider.ErrProviderAuth, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	p.token = token.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	return p.token, nil
}

func (p *Provider) toOffers(ctx context.Context, raw []rawOffer) []dto.Offer {
	results := make([]dto.Offer, 0, len(raw))

	for _, record := range raw {
		offer, err := p.toOffer(record)
		if err != nil {
			slog.WarnContext(ctx, "dropping malformed amadeus offer",
				slog.String("offer_id", record.ID),
				slog.String("error", err.Error()))
			continue
		}

		results = append(results, offer)
	}

	return results
}

func (p *Provider) toOffer(raw rawOffer) (dto.Offer, error) {
	if len(raw.Itineraries) == 0 {
		return dto.Offer{}, fmt.Errorf("offer has no itineraries")
	}

	total, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		return dto.Offer{}, fmt.Errorf("parse price %q: %w", raw.Price.Total, err)
	}

	outbound, err := p.toLeg(raw.Itineraries[0])
	if err != nil {
		return dto.Offer{}, fmt.Errorf("outbound leg: %w", err)
	}

	offer := dto.Offer{
		ID:                   fmt.Sprintf("%s_%s", raw.ID, p.name),
		Source:               p.name,
		Price:                int(math.Round(total)),
		Outbound:             outbound,
		TotalDurationMinutes: outbound.DurationMinutes,
	}

	if len(raw.Itineraries) > 1 {
		ret, err := p.toLeg(raw.Itineraries[1])
		if err != nil {
			return dto.Offer{}, fmt.Errorf("return leg: %w", err)
		}
		offer.Return = &ret
		offer.TotalDurationMinutes += ret.DurationMinutes
	}

	code := raw.carrierCode()
	offer.AirlineCode = code
	offer.Airline = offerprovider.AirlineName(code)

	return offer, nil
}

func (p *Provider) toLeg(trip rawTrip) (dto.Leg, error) {
	if len(trip.Segments) == 0 {
		return dto.Leg{}, fmt.Errorf("itinerary has no segments")
	}

	duration, err := utils.ParseISODurationMinutes(trip.Duration)
	if err != nil {
		return dto.Leg{}, err
	}

	departure, err := time.Parse("2006-01-02T15:04:05", trip.Segments[0].Departure.At)
	if err != nil {
		return dto.Leg{}, fmt.Errorf("parse departure %q: %w", trip.Segments[0].Departure.At, err)
	}

	arrival, err := time.Parse("2006-01-02T15:04:05", trip.Segments[len(trip.Segments)-1].Arrival.At)
	if err != nil {
		return dto.Leg{}, fmt.Errorf("parse arrival %q: %w", trip.Segments[len(trip.Segments)-1].Arrival.At, err)
	}

	return dto.Leg{
		Departure:       departure,
		Arrival:         arrival,
		DurationMinutes: duration,
		StopCount:       len(trip.Segments) - 1,
	}, nil
}

func (r rawOffer) carrierCode() string {
	if len(r.ValidatingAirlineCodes) > 0 {
		return r.ValidatingAirlineCodes[0]
	}
	if len(r.Itineraries) > 0 && len(r.Itineraries[0].Segments) > 0 {
		return r.Itineraries[0].Segments[0].CarrierCode
	}
	return ""
}
