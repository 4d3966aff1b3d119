package persistence

import (
	"context"
	"encoding/json"
	"fibaro-hap-bridge/internal/domain/model"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
)

// FileConfigRepository stores the bridge config as JSON, or as YAML when the
// file name ends in .yaml or .yml.
type FileConfigRepository struct {
	filepath string
	mu       sync.RWMutex
}

func NewFileConfigRepository(filepath string) *FileConfigRepository {
	return &FileConfigRepository{filepath: filepath}
}

func (r *FileConfigRepository) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(r.filepath))
	return ext == ".yaml" || ext == ".yml"
}

func (r *FileConfigRepository) Get(ctx context.Context) (*model.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := &model.Config{Accessories: []*model.AccessoryConfig{}}
	data, err := os.ReadFile(r.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			defaults.SetDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if r.isYAML() {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.filepath, err)
	}

	defaults.SetDefaults(cfg)
	return cfg, nil
}

func (r *FileConfigRepository) Save(ctx context.Context, config *model.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		data []byte
		err  error
	)
	if r.isYAML() {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(r.filepath, data, 0644)
}
