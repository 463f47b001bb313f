package config

import "time"

// RoutingConfig holds OSRM client configuration
type RoutingConfig struct {
	// BaseURL of the OSRM instance
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Timeout per routing request. Long multi-leg routes can take a while
	// on the public demo server
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}
