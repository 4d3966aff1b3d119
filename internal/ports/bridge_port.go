package ports

import (
	"context"
	"fibaro-hap-bridge/internal/domain/model"

	"github.com/amimof/huego"
)

// CharacteristicValue is the current value of one accessory characteristic.
type CharacteristicValue struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Value  interface{}  `json:"value"`
	Origin model.Origin `json:"origin,omitempty"`
}

// ColorView omits HSV while it holds NaN channels from a malformed color.
type ColorView struct {
	RGB model.RGB  `json:"rgb"`
	HSV *model.HSV `json:"hsv,omitempty"`
}

type AccessoryView struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	DeviceID        string                `json:"device_id"`
	Service         model.ServiceKind     `json:"service"`
	Color           *ColorView            `json:"color,omitempty"`
	Characteristics []CharacteristicValue `json:"characteristics"`
}

type BridgePort interface {
	GetAccessories(ctx context.Context) ([]*AccessoryView, error)
	GetAccessory(ctx context.Context, id string) (*AccessoryView, error)
	ReadCharacteristic(ctx context.Context, id, name string) (interface{}, error)
	GetLights(ctx context.Context) (map[string]*huego.Light, error)

	// Hub push
	IngestProperties(ctx context.Context, deviceID string, props model.Properties) error
	IngestSecurityStatus(ctx context.Context, status model.SecurityStatus) error

	GetConfig(ctx context.Context) (*model.Config, error)
}
