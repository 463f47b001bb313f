package config

import "time"

// GeocodingConfig holds Nominatim client configuration
type GeocodingConfig struct {
	// BaseURL of the Nominatim instance
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// UserAgent sent with every request. Nominatim's usage policy requires
	// one that identifies the application
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// Timeout per geocoding request
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// RateInterval is the minimum spacing between requests. The public
	// Nominatim instance allows at most one request per second
	RateInterval time.Duration `mapstructure:"rate_interval" validate:"required"`
}
