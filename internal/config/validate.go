package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// UpdateInterval validation
	minUpdateInterval = 1 * time.Minute // Minimum to avoid hammering the game APIs
	maxUpdateInterval = 24 * time.Hour  // Maximum reasonable interval

	// OutputSize validation
	minOutputSize = 256  // Anything smaller is unreadable
	maxOutputSize = 8192 // Prevent runaway memory use per render
)

// Validate checks the startup-critical configuration values and returns all
// violations at once using errors.Join.
//
// Telemetry credentials and endpoint URLs are deliberately not validated
// here: a missing credential only aborts the poll cycle that needs it, it
// never prevents the bot from starting.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateUpdateInterval(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateOutputSize(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateCalibration(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateUpdateInterval() error {
	if c.UpdateInterval < minUpdateInterval {
		return fmt.Errorf(
			"UPDATE_INTERVAL must be at least %v to avoid excessive API calls, got %v (hint: recommended range is 2m-15m)",
			minUpdateInterval, c.UpdateInterval,
		)
	}

	if c.UpdateInterval > maxUpdateInterval {
		return fmt.Errorf(
			"UPDATE_INTERVAL must be at most %v, got %v",
			maxUpdateInterval, c.UpdateInterval,
		)
	}

	return nil
}

func (c *Config) validateOutputSize() error {
	if c.OutputSize < minOutputSize {
		return fmt.Errorf(
			"OUTPUT_SIZE must be at least %d, got %d",
			minOutputSize, c.OutputSize,
		)
	}

	if c.OutputSize > maxOutputSize {
		return fmt.Errorf(
			"OUTPUT_SIZE must be at most %d, got %d",
			maxOutputSize, c.OutputSize,
		)
	}

	return nil
}

func (c *Config) validateCalibration() error {
	var errs []error

	if c.WorldScale == 0 {
		errs = append(errs, fmt.Errorf("WORLD_SCALE must be non-zero"))
	}

	if c.PixelScaleX == 0 {
		errs = append(errs, fmt.Errorf("MAP_PIXEL_SCALE_X must be non-zero"))
	}

	if c.PixelScaleY == 0 {
		errs = append(errs, fmt.Errorf("MAP_PIXEL_SCALE_Y must be non-zero"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
