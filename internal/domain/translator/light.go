package translator

import (
	"math"

	"github.com/amimof/huego"

	"fibaro-hap-bridge/internal/domain/model"
)

// decodeBrightness reads the V channel of color lights; plain dimmers report
// a level where 99 means fully on.
func decodeBrightness(in Input) (interface{}, error) {
	if in.Service != nil && in.Service.Color != nil {
		hsv := DeriveColor(in.Properties[model.PropColor], in.Service)
		return math.Round(hsv.Value), nil
	}
	r := parseFloat(in.Properties[model.PropValue])
	if r == 99 {
		r = 100
	}
	return r, nil
}

func decodeHue(in Input) (interface{}, error) {
	hsv := DeriveColor(in.Properties[model.PropColor], in.Service)
	return math.Round(hsv.Hue), nil
}

func decodeSaturation(in Input) (interface{}, error) {
	hsv := DeriveColor(in.Properties[model.PropColor], in.Service)
	return math.Round(hsv.Saturation), nil
}

// HueLight projects a lightbulb accessory onto the Hue light model. Other
// service kinds are not lights and report false.
func (r *Registry) HueLight(acc *model.Accessory) (*huego.Light, bool) {
	svc := acc.Service
	if svc == nil || svc.Kind != model.ServiceLightbulb {
		return nil, false
	}

	state := &huego.State{Reachable: true}
	if c := svc.Characteristic(r.ids.On); c != nil {
		state.On, _ = c.Value().(bool)
	}

	light := &huego.Light{
		Name:             acc.Name,
		Type:             "Dimmable light",
		ModelID:          "LWB004",
		ManufacturerName: "Philips",
		UniqueID:         acc.ID,
		State:            state,
	}

	if svc.Color != nil {
		hsv := svc.Color.HSV
		state.Bri = uint8(scale(hsv.Value, 100, 254))
		state.Hue = uint16(scale(hsv.Hue, 360, 65535))
		state.Sat = uint8(scale(hsv.Saturation, 100, 254))
		state.ColorMode = "hs"
		light.Type = "Extended color light"
		light.ModelID = "LCT001"
	} else if c := svc.Characteristic(r.ids.Brightness); c != nil {
		if bri, ok := c.Value().(float64); ok {
			state.Bri = uint8(scale(bri, 100, 254))
		}
	}
	return light, true
}

// scale maps v from [0,from] onto [0,to], clamping and treating NaN as zero.
func scale(v, from, to float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= from {
		return to
	}
	return math.Round(v * to / from)
}
