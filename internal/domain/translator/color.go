package translator

import (
	"math"
	"strings"

	"fibaro-hap-bridge/internal/domain/model"
)

// DeriveColor parses a raw "R,G,B" string and mirrors the RGB and derived HSV
// into the service color state. A state already derived from raw is returned
// as is, so brightness, hue and saturation share one derivation.
//
// Malformed input yields an all-NaN HSV and leaves the RGB channels unchanged.
// A service without color state gets the derivation but nothing is stored.
func DeriveColor(raw string, svc *model.Service) model.HSV {
	var cs *model.ColorState
	if svc != nil {
		cs = svc.Color
	}
	if cs != nil && raw != "" && cs.Source() == raw {
		return cs.HSV
	}

	rgb, ok := parseRGB(raw)
	hsv := model.HSV{Hue: math.NaN(), Saturation: math.NaN(), Value: math.NaN()}
	if ok {
		hsv = RGBToHSVFrom(rgb)
	}
	if cs != nil {
		if !ok {
			rgb = cs.RGB
		}
		cs.Update(raw, rgb, hsv)
	}
	return hsv
}

func parseRGB(raw string) (model.RGB, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) < 3 {
		return model.RGB{}, false
	}
	var ch [3]int
	for i := range ch {
		v := parseInt(parts[i])
		// NaN fails both comparisons.
		if !(v >= math.MinInt32 && v <= math.MaxInt32) {
			return model.RGB{}, false
		}
		ch[i] = int(v)
	}
	return model.RGB{Red: ch[0], Green: ch[1], Blue: ch[2]}, true
}

// RGBToHSV converts 0-255 channels to hue [0,360), saturation and value [0,100].
func RGBToHSV(r, g, b int) model.HSV {
	hi, lo := max(r, g, b), min(r, g, b)
	d := float64(hi - lo)

	var h float64
	switch hi {
	case lo:
		h = 0
	case r:
		h = float64(g - b)
		if g < b {
			h += 6 * d
		}
		h /= 6 * d
	case g:
		h = (float64(b-r) + 2*d) / (6 * d)
	case b:
		h = (float64(r-g) + 4*d) / (6 * d)
	}

	var s float64
	if hi != 0 {
		s = d / float64(hi)
	}
	v := float64(hi) / 255

	return model.HSV{Hue: h * 360, Saturation: s * 100, Value: v * 100}
}

// RGBToHSVFrom is RGBToHSV for a packed color.
func RGBToHSVFrom(c model.RGB) model.HSV {
	return RGBToHSV(c.Red, c.Green, c.Blue)
}
