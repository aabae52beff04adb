package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Config carries the storefront settings. Everything comes from the
// environment; a .env file is loaded when present.
type Config struct {
	Port           string
	ShippingFee    decimal.Decimal
	TaxRate        decimal.Decimal
	ChatReplyDelay time.Duration
	MailFrom       string

	UseEmailReputation bool
	UseMailer          bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using environment")
	}

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		ShippingFee:        decimalEnv("SHIPPING_FLAT_FEE", "9.99"),
		TaxRate:            decimalEnv("TAX_RATE", "0.08"),
		ChatReplyDelay:     durationEnv("CHAT_REPLY_DELAY", 500*time.Millisecond),
		MailFrom:           getEnv("MAIL_FROM", "Storefront<onboarding@resend.dev>"),
		UseEmailReputation: os.Getenv("USE_EMAIL_REPUTATION") == "true",
		UseMailer:          os.Getenv("RESEND_API_KEY") != "",
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func decimalEnv(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.WithField("key", key).Warnf("invalid decimal %q, using %s", raw, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.WithField("key", key).Warnf("invalid duration %q, using %s", raw, fallback)
		return fallback
	}
	return d
}
