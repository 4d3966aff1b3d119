package ports

import (
	"context"
	"fibaro-hap-bridge/internal/domain/model"
)

// ConfigRepository loads the accessory definitions. Get returns a config with
// defaults applied, also when nothing has been stored yet. Save writes the
// config back in the repository's own format.
type ConfigRepository interface {
	Get(ctx context.Context) (*model.Config, error)
	Save(ctx context.Context, cfg *model.Config) error
}
