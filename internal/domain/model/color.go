package model

type RGB struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

// HSV holds hue in degrees [0,360) and saturation/value in [0,100].
type HSV struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Value      float64 `json:"value"`
}

// ColorState is the last known color of one accessory. Brightness, hue and
// saturation are projections of it and must be read from the same update.
type ColorState struct {
	RGB RGB `json:"rgb"`
	HSV HSV `json:"hsv"`

	source string
}

// Source returns the raw "R,G,B" string the state was last derived from.
func (c *ColorState) Source() string {
	return c.source
}

// Update replaces the color state with a derivation of source.
func (c *ColorState) Update(source string, rgb RGB, hsv HSV) {
	c.source = source
	c.RGB = rgb
	c.HSV = hsv
}
