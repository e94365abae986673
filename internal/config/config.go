package config

import (
	"log"
	"os"
	"strconv"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat reads a float environment value, falling back (with a log
// line) on unset or unparseable values.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

// HOSLimits carries the FMCSA hours-of-service constants the log engine
// applies. All hour figures; AverageSpeedMPH converts miles to driving
// hours.
type HOSLimits struct {
	DailyDriveLimit    float64
	DailyDutyLimit     float64
	CycleLimit         float64
	RequiredBreakHours float64
	RestResetHours     float64
	AverageSpeedMPH    float64
}

// DefaultHOSLimits returns the standard property-carrying limits:
// 11h driving / 14h duty window / 70h-per-8-days cycle.
func DefaultHOSLimits() HOSLimits {
	return HOSLimits{
		DailyDriveLimit:    11,
		DailyDutyLimit:     14,
		CycleLimit:         70,
		RequiredBreakHours: 0.5,
		RestResetHours:     10,
		AverageSpeedMPH:    55,
	}
}

// LoadHOSLimits applies environment overrides on top of the defaults.
func LoadHOSLimits() HOSLimits {
	d := DefaultHOSLimits()
	return HOSLimits{
		DailyDriveLimit:    GetFloat("FMCSA_DAILY_DRIVE_LIMIT", d.DailyDriveLimit),
		DailyDutyLimit:     GetFloat("FMCSA_DAILY_DUTY_LIMIT", d.DailyDutyLimit),
		CycleLimit:         GetFloat("FMCSA_CYCLE_LIMIT", d.CycleLimit),
		RequiredBreakHours: d.RequiredBreakHours,
		RestResetHours:     d.RestResetHours,
		AverageSpeedMPH:    GetFloat("AVERAGE_SPEED_MPH", d.AverageSpeedMPH),
	}
}
