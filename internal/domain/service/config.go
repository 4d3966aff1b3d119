package service

import (
	"context"
	"errors"
	"fibaro-hap-bridge/internal/domain/model"
	"fibaro-hap-bridge/internal/ports"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid config")

// ConfigService loads the bridge configuration and rejects inconsistent ones.
type ConfigService struct {
	repo ports.ConfigRepository
}

func NewConfigService(repo ports.ConfigRepository) *ConfigService {
	return &ConfigService{
		repo: repo,
	}
}

func (s *ConfigService) GetConfig(ctx context.Context) (*model.Config, error) {
	return s.repo.Get(ctx)
}

// Load reads the configuration and validates it.
func (s *ConfigService) Load(ctx context.Context) (*model.Config, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rewrite validates the stored configuration and saves it back with every
// default filled in.
func (s *ConfigService) Rewrite(ctx context.Context) (*model.Config, error) {
	cfg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}
	return cfg, nil
}

// Validate checks accessory identity and characteristic names. Formulas are
// checked when decoders are bound.
func Validate(cfg *model.Config) error {
	if _, err := cfg.Interval(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	seen := make(map[string]bool, len(cfg.Accessories))
	for i, ac := range cfg.Accessories {
		if ac.ID == "" {
			return fmt.Errorf("%w: accessory #%d has no id", ErrInvalidConfig, i)
		}
		if seen[ac.ID] {
			return fmt.Errorf("%w: duplicate accessory id %s", ErrInvalidConfig, ac.ID)
		}
		seen[ac.ID] = true
		if ac.DeviceID == "" {
			return fmt.Errorf("%w: accessory %s has no device_id", ErrInvalidConfig, ac.ID)
		}
		for _, cc := range ac.Characteristics {
			if _, ok := model.CharacteristicTypeByName(cc.Name); !ok {
				return fmt.Errorf("%w: accessory %s: unknown characteristic %q", ErrInvalidConfig, ac.ID, cc.Name)
			}
			if b := cc.Bounds(); b.MinValue > b.MaxValue {
				return fmt.Errorf("%w: accessory %s: %s min_value above max_value", ErrInvalidConfig, ac.ID, cc.Name)
			}
		}
	}
	return nil
}
