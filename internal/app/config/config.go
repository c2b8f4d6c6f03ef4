package config

import (
	"log/slog"
	"strings"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the tracker configuration.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	Trip      Trip       `mapstructure:",squash"`
	Rules     Rules      `mapstructure:",squash"`
	History   History    `mapstructure:",squash"`
	Alerting  Alerting   `mapstructure:",squash"`
	Providers Provider   `mapstructure:",squash"`
}

// Trip fixes the tracked itinerary for every run.
type Trip struct {
	Origin       string `mapstructure:"ORIGIN" validate:"required,len=3,uppercase"`
	Destination  string `mapstructure:"DESTINATION" validate:"required,len=3,uppercase"`
	OutboundDate string `mapstructure:"OUTBOUND_DATE" validate:"required,datetime=2006-01-02"`
	ReturnDate   string `mapstructure:"RETURN_DATE" validate:"omitempty,datetime=2006-01-02"`
}

// Rules holds the filter and alert preferences.
type Rules struct {
	MaxBudgetINR          int     `mapstructure:"MAX_BUDGET_INR" validate:"gt=0"`
	EarliestOutboundHour  int     `mapstructure:"EARLIEST_OUTBOUND_HOUR" validate:"gte=0,lte=23"`
	ReturnWindowStartHour int     `mapstructure:"RETURN_WINDOW_START_HOUR" validate:"gte=0,lte=23"`
	ReturnWindowEndHour   int     `mapstructure:"RETURN_WINDOW_END_HOUR" validate:"gte=0,lte=24"`
	MaxStops              int     `mapstructure:"MAX_STOPS" validate:"gte=0"`
	ExcludedAirlines      string  `mapstructure:"EXCLUDED_AIRLINES"`
	DropThresholdINR      int     `mapstructure:"DROP_ALERT_THRESHOLD_INR" validate:"gte=0"`
	RefundableMarkup      float64 `mapstructure:"REFUNDABLE_MARKUP" validate:"gte=0,lt=1"`
	DailySummaryHour      int     `mapstructure:"DAILY_SUMMARY_HOUR" validate:"gte=0,lte=23"`
}

// ExcludedAirlineCodes splits the comma separated airline code list.
func (r Rules) ExcludedAirlineCodes() []string {
	if r.ExcludedAirlines == "" {
		return nil
	}

	parts := strings.Split(r.ExcludedAirlines, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code != "" {
			codes = append(codes, code)
		}
	}

	return codes
}

type History struct {
	FilePath string `mapstructure:"HISTORY_FILE_PATH" validate:"required"`
}

type SMTP struct {
	Host     string `mapstructure:"SMTP_HOST"`
	Port     int    `mapstructure:"SMTP_PORT"`
	Username string `mapstructure:"SMTP_USERNAME"`
	Password string `mapstructure:"SMTP_PASSWORD"`
	From     string `mapstructure:"ALERT_EMAIL_FROM" validate:"omitempty,email"`
	To       string `mapstructure:"ALERT_EMAIL_TO"`
}

// Recipients splits the comma separated recipient list.
func (s SMTP) Recipients() []string {
	if s.To == "" {
		return nil
	}

	parts := strings.Split(s.To, ",")
	addrs := make([]string, 0, len(parts))
	for _, part := range parts {
		addr := strings.TrimSpace(part)
		if addr != "" {
			addrs = append(addrs, addr)
		}
	}

	return addrs
}

type Alerting struct {
	SMTP       SMTP   `mapstructure:",squash"`
	WebhookURL string `mapstructure:"ALERT_WEBHOOK_URL" validate:"omitempty,url"`
}

type AmadeusProvider struct {
	BaseURL      string        `mapstructure:"AMADEUS_BASE_URL"`
	ClientID     string        `mapstructure:"AMADEUS_CLIENT_ID"`
	ClientSecret string        `mapstructure:"AMADEUS_CLIENT_SECRET"`
	Timeout      time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"AMADEUS_RATE_LIMIT"`
}

type KiwiProvider struct {
	BaseURL      string        `mapstructure:"KIWI_BASE_URL"`
	APIKey       string        `mapstructure:"KIWI_API_KEY"`
	Timeout      time.Duration `mapstructure:"KIWI_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"KIWI_RATE_LIMIT"`
}

type Provider struct {
	AmadeusProvider AmadeusProvider `mapstructure:",squash"`
	KiwiProvider    KiwiProvider    `mapstructure:",squash"`
}
