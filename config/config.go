// Package config loads the reporter's configuration from the
// environment, with an optional .env overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sudosos/payout-report/report"
)

// restrictedKeyPrefix is the prefix Stripe gives restricted API keys.
// Only restricted keys are accepted: the reporter needs read access to
// payouts, balance transactions and checkout sessions, nothing more.
const restrictedKeyPrefix = "rk_"

// Config holds everything the CLI needs before touching the network.
type Config struct {
	// APIKey is the Stripe API key, from STRIPE_API_KEY.
	APIKey string

	// DirectChargeLabel is the product label for payments without a
	// checkout session, from DIRECT_CHARGE_LABEL.
	DirectChargeLabel string
}

// Load reads configuration from the process environment. A .env file in
// the working directory is applied first when present; missing is fine.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		APIKey:            os.Getenv("STRIPE_API_KEY"),
		DirectChargeLabel: os.Getenv("DIRECT_CHARGE_LABEL"),
	}
	if cfg.DirectChargeLabel == "" {
		cfg.DirectChargeLabel = report.DefaultDirectChargeLabel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the credential before any remote call is made.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("STRIPE_API_KEY is not set")
	}
	if !strings.HasPrefix(c.APIKey, restrictedKeyPrefix) {
		return fmt.Errorf("STRIPE_API_KEY must be a restricted API key (prefix %q)", restrictedKeyPrefix)
	}
	return nil
}
