package thousandeyes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is returned when a constant or a catalog cost is not positive.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the metering constants.
type Config struct {
	// MinutesPerMonth is the length of the billing month; 43,200 is 30 days.
	MinutesPerMonth int

	CloudMultiplier      decimal.Decimal
	EnterpriseMultiplier decimal.Decimal
}

// DefaultConfig returns the published ThousandEyes constants.
func DefaultConfig() Config {
	return Config{
		MinutesPerMonth:      43_200,
		CloudMultiplier:      decimal.NewFromInt(2),
		EnterpriseMultiplier: decimal.NewFromInt(1),
	}
}

// Validate reports every non-positive constant in one error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []string
	if c.MinutesPerMonth <= 0 {
		errs = append(errs, fmt.Sprintf("minutes per month must be positive, got %d", c.MinutesPerMonth))
	}
	if !c.CloudMultiplier.IsPositive() {
		errs = append(errs, fmt.Sprintf("cloud multiplier must be positive, got %s", c.CloudMultiplier))
	}
	if !c.EnterpriseMultiplier.IsPositive() {
		errs = append(errs, fmt.Sprintf("enterprise multiplier must be positive, got %s", c.EnterpriseMultiplier))
	}
	for _, tt := range Catalog() {
		if !tt.Cost.IsPositive() {
			errs = append(errs, fmt.Sprintf("cost of %s must be positive, got %s", tt.Key, tt.Cost))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("thousandeyes: %w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
