package license

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a conversion constant is not positive.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the conversion constants of the licensing model.
type Config struct {
	// PageviewsPerUserPerMonth converts monthly sessions/users to pageviews.
	PageviewsPerUserPerMonth int

	// BrowserPageviewsPerUnit is the annual pageview allowance of one RUM Browser unit.
	BrowserPageviewsPerUnit int

	// ActiveAgentsPerMobileUnit is the monthly Active Agent allowance of one RUM Mobile unit.
	ActiveAgentsPerMobileUnit int

	// TokensPerPageview is the RUM token cost of one browser pageview.
	TokensPerPageview int

	// TokensPerActiveAgentMonth is the RUM token cost of one mobile Active Agent per month.
	TokensPerActiveAgentMonth int
}

// DefaultConfig returns the published AppDynamics SaaS constants.
func DefaultConfig() Config {
	return Config{
		PageviewsPerUserPerMonth:  20,
		BrowserPageviewsPerUnit:   10_000_000,
		ActiveAgentsPerMobileUnit: 5_000,
		TokensPerPageview:         1,
		TokensPerActiveAgentMonth: 160,
	}
}

// Validate reports every non-positive constant in one error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"pageviews per user per month", c.PageviewsPerUserPerMonth},
		{"browser pageviews per unit", c.BrowserPageviewsPerUnit},
		{"active agents per mobile unit", c.ActiveAgentsPerMobileUnit},
		{"tokens per pageview", c.TokensPerPageview},
		{"tokens per active agent month", c.TokensPerActiveAgentMonth},
	}

	var errs []string
	for _, ch := range checks {
		if ch.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got %d", ch.name, ch.value))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("license: %w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
