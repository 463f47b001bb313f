package config

import "time"

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Host to bind the listener
	Host string `mapstructure:"host"`

	// Port for the HTTP server
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`

	// CORSOrigins lists the origins allowed to call the API ("*" for all)
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Timeouts for reading requests, writing responses and idle keep-alives
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" validate:"required"`

	// ShutdownTimeout bounds how long graceful shutdown waits for in-flight
	// requests to drain
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// PIDFile enables single-instance enforcement when set to a path
	PIDFile string `mapstructure:"pid_file"`
}
