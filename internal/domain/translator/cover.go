package translator

import (
	"fmt"

	"fibaro-hap-bridge/internal/domain/model"
)

// The hub never reports blinds in motion.
func decodePositionState(in Input) (interface{}, error) {
	return model.PositionStopped, nil
}

// decodePosition validates the raw level against the characteristic bounds.
// Dimmer-style modules top out at 99, which is reported as fully open.
func decodePosition(in Input) (interface{}, error) {
	r := parseInt(in.Properties[model.PropValue])
	p := in.Characteristic.Props
	// NaN fails both comparisons.
	if !(r >= p.MinValue && r <= p.MaxValue) {
		return nil, fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidWindowPosition, r, p.MinValue, p.MaxValue)
	}
	if r == 99 {
		r = 100
	}
	return int(r), nil
}
