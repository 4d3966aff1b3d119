package ports

import (
	"context"
	"errors"
	"fibaro-hap-bridge/internal/domain/model"
)

// PropertySource supplies the latest property snapshot of hub devices.
type PropertySource interface {
	Properties(ctx context.Context, deviceID string) (model.Properties, error)
	SecurityStatus(ctx context.Context) (model.SecurityStatus, error)
}

// PropertyStore is a PropertySource that accepts pushed snapshots.
type PropertyStore interface {
	PropertySource
	PutProperties(ctx context.Context, deviceID string, props model.Properties) error
	PutSecurityStatus(ctx context.Context, status model.SecurityStatus) error
}

// ErrNoSnapshot is returned by a PropertySource that has not seen a device yet.
var ErrNoSnapshot = errors.New("no property snapshot for device")
