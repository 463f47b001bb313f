package planning

// Rules contains the FMCSA hours-of-service limits and trip assumptions the
// planner drives with. The limits come from 49 CFR 395 for property-carrying
// drivers; the assumptions reflect operating policy.
type Rules struct {
	Limits      HOSLimits
	Assumptions TripAssumptions
}

// HOSLimits contains the regulatory duty limits
type HOSLimits struct {
	MaxDrivingHours float64 // Daily driving ceiling (11-hour rule)
	MaxOnDutyHours  float64 // Daily on-duty window (14-hour rule)
	BreakAfterHours float64 // Cumulative driving before a 30-minute break
	MaxCycleHours   float64 // Rolling 8-day on-duty ceiling
	RestHours       float64 // Off-duty period that resets daily counters
	BreakMinutes    int     // Mandatory break duration
}

// TripAssumptions contains planning assumptions for timing and stops
type TripAssumptions struct {
	AverageSpeedMPH   float64 // Average drive speed
	FuelIntervalMiles float64 // Distance between fuel stops
	FuelStopMinutes   int     // Fuel stop duration
	PickupMinutes     int     // Loading time at pickup
	DropoffMinutes    int     // Unloading time at dropoff
	PreTripMinutes    int     // Pre-trip inspection duration
	PostTripMinutes   int     // Post-trip inspection duration
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		Limits: HOSLimits{
			MaxDrivingHours: 11.0,
			MaxOnDutyHours:  14.0,
			BreakAfterHours: 8.0,
			MaxCycleHours:   70.0,
			RestHours:       10.0,
			BreakMinutes:    30,
		},
		Assumptions: TripAssumptions{
			AverageSpeedMPH:   55,
			FuelIntervalMiles: 1000,
			FuelStopMinutes:   30,
			PickupMinutes:     60,
			DropoffMinutes:    60,
			PreTripMinutes:    30,
			PostTripMinutes:   15,
		},
	}
}
