package config

import (
	"os"
	"strconv"
	"strings"

	"hetcal/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Run   RunConfig
	Sweep SweepConfig
}

// RunConfig holds the Monte Carlo parameters shared by calibration runs
type RunConfig struct {
	NSamples  int     // Sample size per trial
	NTrials   int     // Monte Carlo trials per arm
	Alpha     float64 // Nominal significance level
	Bandwidth float64 // Kernel bandwidth for the regression fit
	Workers   int     // Parallel trial workers; 0 means one per CPU
}

// SweepConfig holds the power-curve sweep parameters
type SweepConfig struct {
	Strengths []float64 // Effect strengths, in output order
	NTrials   int       // Trials per strength; smaller than the calibration count
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Run: RunConfig{
			NSamples:  getEnvIntOrDefault("HETCAL_SAMPLES", 200),
			NTrials:   getEnvIntOrDefault("HETCAL_TRIALS", 500),
			Alpha:     getEnvFloatOrDefault("HETCAL_ALPHA", 0.05),
			Bandwidth: getEnvFloatOrDefault("HETCAL_BANDWIDTH", 0.1),
			Workers:   getEnvIntOrDefault("HETCAL_WORKERS", 0),
		},
		Sweep: SweepConfig{
			NTrials: getEnvIntOrDefault("HETCAL_SWEEP_TRIALS", 200),
		},
	}

	strengths, err := parseStrengths(getEnvOrDefault("HETCAL_SWEEP_STRENGTHS", "0,0.25,0.5,0.75,1.0,1.5,2.0"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sweep configuration")
	}
	config.Sweep.Strengths = strengths

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks semantic constraints on the loaded values
func (c *Config) Validate() error {
	if c.Run.NSamples < 2 {
		return errors.ConfigInvalid("HETCAL_SAMPLES must be at least 2")
	}
	if c.Run.NTrials <= 0 {
		return errors.ConfigInvalid("HETCAL_TRIALS must be positive")
	}
	if c.Run.Alpha <= 0 || c.Run.Alpha >= 1 {
		return errors.ConfigInvalid("HETCAL_ALPHA must lie strictly between 0 and 1")
	}
	if c.Run.Bandwidth <= 0 {
		return errors.ConfigInvalid("HETCAL_BANDWIDTH must be positive")
	}
	if c.Sweep.NTrials <= 0 {
		return errors.ConfigInvalid("HETCAL_SWEEP_TRIALS must be positive")
	}
	if len(c.Sweep.Strengths) == 0 {
		return errors.ConfigInvalid("HETCAL_SWEEP_STRENGTHS must name at least one strength")
	}
	for _, s := range c.Sweep.Strengths {
		if s < 0 {
			return errors.ConfigInvalid("sweep strengths must be nonnegative")
		}
	}
	return nil
}

func parseStrengths(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	strengths := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("invalid sweep strength " + p)
		}
		strengths = append(strengths, v)
	}
	return strengths, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
