package model

import (
	"fmt"
	"time"
)

type CharacteristicConfig struct {
	Name string `json:"name" yaml:"name"`
	// Declared bounds, used by position validation
	MinValue *float64 `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	// Calibration applied to numeric values (variable: x)
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// Bounds returns the declared bounds, defaulting to 0..100.
func (c *CharacteristicConfig) Bounds() Props {
	p := Props{MinValue: 0, MaxValue: 100}
	if c.MinValue != nil {
		p.MinValue = *c.MinValue
	}
	if c.MaxValue != nil {
		p.MaxValue = *c.MaxValue
	}
	return p
}

type AccessoryConfig struct {
	ID              string                  `json:"id" yaml:"id"`
	Name            string                  `json:"name" yaml:"name"`
	DeviceID        string                  `json:"device_id" yaml:"device_id"` // Hub device reference
	Service         ServiceKind             `json:"service" yaml:"service"`
	Color           bool                    `json:"color,omitempty" yaml:"color,omitempty"`
	Characteristics []*CharacteristicConfig `json:"characteristics" yaml:"characteristics"`
}

type Config struct {
	ListenAddr   string             `json:"listen_addr" yaml:"listen_addr" default:":8080"`
	PollInterval string             `json:"poll_interval" yaml:"poll_interval" default:"5s"`
	LogLevel     string             `json:"log_level" yaml:"log_level" default:"info"`
	Accessories  []*AccessoryConfig `json:"accessories" yaml:"accessories"` // Ordered slice
}

// Interval parses PollInterval, e.g. "5s" or "1m".
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll_interval %q: %w", c.PollInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid poll_interval %q: must be positive", c.PollInterval)
	}
	return d, nil
}
