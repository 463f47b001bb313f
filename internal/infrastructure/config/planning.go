package config

// PlanningConfig holds trip planning configuration
type PlanningConfig struct {
	// StartHour is the local hour of day trips begin at
	StartHour int `mapstructure:"start_hour" validate:"min=0,max=23"`
}
