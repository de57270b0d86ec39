package config

import (
	"os"
	"strconv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	PayPalClientID string
	PayPalSecret   string
	PayPalBaseURL  string
	Currency       string

	SendGridAPIKey string
	EmailSender    string

	GoogleMapAPIKey string
	VenueLat        float64
	VenueLng        float64
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:        getenv("CONF_MERCH_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		PayPalClientID: os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:   os.Getenv("PAYPAL_SECRET"),
		PayPalBaseURL:  os.Getenv("PAYPAL_BASE_URL"),
		Currency:       getenv("CURRENCY", "USD"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),

		GoogleMapAPIKey: os.Getenv("GOOGLE_MAP_API_KEY"),
		VenueLat:        getenvFloat("VENUE_LAT", 19.4267261),
		VenueLng:        getenvFloat("VENUE_LNG", -99.1718706),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
