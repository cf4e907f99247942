package config

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Quiz.validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if err := c.Payment.validate(); err != nil {
		return fmt.Errorf("payment: %w", err)
	}

	if c.Registration.Delay < 0 {
		return fmt.Errorf("registration: delay must be >= 0 (got %v)", c.Registration.Delay)
	}

	return nil
}

func (q *QuizConfig) validate() error {
	if q.WideTimeLimit <= 0 {
		return fmt.Errorf("wide_time_limit must be > 0 (got %v)", q.WideTimeLimit)
	}
	if q.NarrowTimeLimit <= 0 {
		return fmt.Errorf("narrow_time_limit must be > 0 (got %v)", q.NarrowTimeLimit)
	}
	if q.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be > 0 (got %v)", q.TickInterval)
	}
	if q.MaxSessions <= 0 {
		return fmt.Errorf("max_sessions must be > 0 (got %d)", q.MaxSessions)
	}
	if q.SessionTTL < q.WideTimeLimit || q.SessionTTL < q.NarrowTimeLimit {
		return fmt.Errorf("session_ttl (%v) must outlast the time limits", q.SessionTTL)
	}
	return nil
}

func (d *DictionaryConfig) validate() error {
	switch d.Source {
	case DictionarySourceStatic:
	case DictionarySourceRemote:
		if _, err := url.ParseRequestURI(d.BaseURL); err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
		if d.RelayURL != "" {
			if _, err := url.ParseRequestURI(d.RelayURL); err != nil {
				return fmt.Errorf("relay_url: %w", err)
			}
		}
		if d.Timeout <= 0 {
			return fmt.Errorf("timeout must be > 0 (got %v)", d.Timeout)
		}
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", DictionarySourceStatic, DictionarySourceRemote, d.Source)
	}

	if d.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", d.CacheSize)
	}
	return nil
}

func (p *PaymentConfig) validate() error {
	var err error

	if p.BasicPrice, err = parseAmount("basic_price", p.BasicPriceRaw); err != nil {
		return err
	}
	if p.PremiumPrice, err = parseAmount("premium_price", p.PremiumPriceRaw); err != nil {
		return err
	}
	if p.TaxRate, err = parseAmount("tax_rate", p.TaxRateRaw); err != nil {
		return err
	}
	if p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax_rate must be <= 1 (got %s)", p.TaxRate)
	}
	if p.ProcessingDelay < 0 {
		return fmt.Errorf("processing_delay must be >= 0 (got %v)", p.ProcessingDelay)
	}
	return nil
}

// parseAmount parses a non-negative decimal string.
func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid decimal %q: %w", field, raw, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s must be >= 0 (got %s)", field, raw)
	}
	return d, nil
}
