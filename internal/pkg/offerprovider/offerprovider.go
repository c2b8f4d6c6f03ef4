package offerprovider

import (
	"context"
	"net/http"
	"time"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"golang.org/x/time/rate"
)

// Trip is the fixed itinerary every provider searches.
type Trip struct {
	Origin       string
	Destination  string
	OutboundDate string
	ReturnDate   string
}

// ProviderConfig carries the transport settings shared by all providers.
type ProviderConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimitRPS int
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client returns the configured HTTP client or a default one bounded
// by the provider timeout.
func (c ProviderConfig) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &http.Client{Timeout: timeout}
}

// Limiter builds the client-side rate limiter for the provider.
func (c ProviderConfig) Limiter() *rate.Limiter {
	rps := c.RateLimitRPS
	if rps <= 0 {
		rps = 5
	}

	return rate.NewLimiter(rate.Limit(rps), rps)
}

type OfferProvider interface {
	Name() string
	Search(ctx context.Context) ([]dto.Offer, error)
}

type Registry struct {
	Provider map[string]OfferProvider
}

func NewRegistry() *Registry {
	return &Registry{
		Provider: make(map[string]OfferProvider),
	}
}

func (r *Registry) AddProvider(name string, provider OfferProvider) {
	r.Provider[name] = provider
}

func (r *Registry) GetProvider(name string) OfferProvider {
	return r.Provider[name]
}

func (r *Registry) GetAllProviders() map[string]OfferProvider {
	return r.Provider
}
