package cli

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/config"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/dto"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/app/service"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/flight"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/logger"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/notifier"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider/amadeus"
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/offerprovider/kiwi"
)

var dailySummary bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one tracking pass",
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		// unexpected panics must surface as a non-zero exit so the
		// scheduler can flag the run
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("tracker run panicked: %v", r)
			}
		}()

		cfg := config.MustInitConfig(cfgFile)
		logger.InitStructuredLogger(cfg.LogLevel)

		if err := dto.InitValidator(); err != nil {
			return fmt.Errorf("init validator: %w", err)
		}

		if err := dto.ValidateSingleError(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		criteria := buildCriteria(cfg)
		if err := criteria.Validate(); err != nil {
			return fmt.Errorf("invalid filter criteria: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		trip := offerprovider.Trip{
			Origin:       cfg.Trip.Origin,
			Destination:  cfg.Trip.Destination,
			OutboundDate: cfg.Trip.OutboundDate,
			ReturnDate:   cfg.Trip.ReturnDate,
		}

		svc := service.NewTrackerService(
			buildRegistry(cfg, trip),
			flight.NewHistoryStore(cfg.History.FilePath),
			buildNotifiers(cfg),
			trip,
			criteria,
			cfg.Rules.DropThresholdINR,
		)

		mode := dailySummary || time.Now().Hour() == cfg.Rules.DailySummaryHour

		result, err := svc.Run(ctx, mode)
		if err != nil {
			return fmt.Errorf("tracker run: %w", err)
		}

		slog.InfoContext(ctx, "run finished",
			slog.Int("offers_fetched", result.OffersFetched),
			slog.Int("offers_kept", result.OffersKept),
			slog.Int("providers_failed", result.ProvidersFailed),
			slog.Int("alerts", len(result.Alerts)),
			slog.Bool("daily_summary", result.DailySummary))

		return nil
	},
}

func buildCriteria(cfg config.Config) dto.FilterCriteria {
	return dto.FilterCriteria{
		MaxBudget:             cfg.Rules.MaxBudgetINR,
		EarliestOutboundHour:  cfg.Rules.EarliestOutboundHour,
		ReturnWindowStartHour: cfg.Rules.ReturnWindowStartHour,
		ReturnWindowEndHour:   cfg.Rules.ReturnWindowEndHour,
		MaxStops:              cfg.Rules.MaxStops,
		ExcludedAirlines:      cfg.Rules.ExcludedAirlineCodes(),
	}
}

// buildRegistry registers the two flight-search providers.
func buildRegistry(cfg config.Config, trip offerprovider.Trip) *offerprovider.Registry {
	registry := offerprovider.NewRegistry()

	registry.AddProvider(amadeus.ProviderName, amadeus.NewProvider(
		offerprovider.ProviderConfig{
			BaseURL:      cfg.Providers.AmadeusProvider.BaseURL,
			Timeout:      cfg.Providers.AmadeusProvider.Timeout,
			RateLimitRPS: cfg.Providers.AmadeusProvider.RateLimitRPS,
		},
		trip,
		cfg.Providers.AmadeusProvider.ClientID,
		cfg.Providers.AmadeusProvider.ClientSecret,
	))

	registry.AddProvider(kiwi.ProviderName, kiwi.NewProvider(
		offerprovider.ProviderConfig{
			BaseURL:      cfg.Providers.KiwiProvider.BaseURL,
			Timeout:      cfg.Providers.KiwiProvider.Timeout,
			RateLimitRPS: cfg.Providers.KiwiProvider.RateLimitRPS,
		},
		trip,
		cfg.Providers.KiwiProvider.APIKey,
		cfg.Rules.RefundableMarkup,
	))

	return registry
}

func buildNotifiers(cfg config.Config) []notifier.Notifier {
	notifiers := []notifier.Notifier{
		notifier.NewEmail(notifier.EmailConfig{
			Host:     cfg.Alerting.SMTP.Host,
			Port:     cfg.Alerting.SMTP.Port,
			Username: cfg.Alerting.SMTP.Username,
			Password: cfg.Alerting.SMTP.Password,
			From:     cfg.Alerting.SMTP.From,
			To:       cfg.Alerting.SMTP.Recipients(),
		}),
	}

	if cfg.Alerting.WebhookURL != "" {
		notifiers = append(notifiers, notifier.NewWebhook(cfg.Alerting.WebhookURL))
	}

	return notifiers
}

func init() {
	runCmd.Flags().BoolVar(&dailySummary, "daily-summary", false,
		"force daily-summary mode instead of deriving it from the clock")
	rootCmd.AddCommand(runCmd)
}
