package translator

import (
	"fmt"

	"fibaro-hap-bridge/internal/domain/model"
)

// Registry maps characteristic identifiers to decoders. It is immutable once built.
type Registry struct {
	ids      model.CharacteristicIDs
	decoders map[model.CharacteristicType]Decoder
}

func NewRegistry(ids model.CharacteristicIDs) *Registry {
	return &Registry{
		ids: ids,
		decoders: map[model.CharacteristicType]Decoder{
			ids.On:                         DecoderFunc(decodeBool),
			ids.Brightness:                 DecoderFunc(decodeBrightness),
			ids.PositionState:              DecoderFunc(decodePositionState),
			ids.CurrentPosition:            DecoderFunc(decodePosition),
			ids.TargetPosition:             DecoderFunc(decodePosition), // same as current position
			ids.MotionDetected:             DecoderFunc(decodeBool),
			ids.CurrentTemperature:         DecoderFunc(decodeFloat),
			ids.TargetTemperature:          DecoderFunc(decodeTargetTemperature),
			ids.CurrentRelativeHumidity:    DecoderFunc(decodeFloat),
			ids.ContactSensorState:         DecoderFunc(decodeContactSensorState),
			ids.LeakDetected:               DecoderFunc(decodeLeakDetected),
			ids.SmokeDetected:              DecoderFunc(decodeSmokeDetected),
			ids.CurrentAmbientLightLevel:   DecoderFunc(decodeFloat),
			ids.OutletInUse:                DecoderFunc(decodeOutletInUse),
			ids.LockCurrentState:           DecoderFunc(decodeLockState),
			ids.LockTargetState:            DecoderFunc(decodeLockState), // same as current state
			ids.CurrentHeatingCoolingState: DecoderFunc(decodeHeatingCoolingState),
			ids.TargetHeatingCoolingState:  DecoderFunc(decodeHeatingCoolingState), // same as current state
			ids.TemperatureDisplayUnits:    DecoderFunc(decodeTemperatureDisplayUnits),
			ids.Hue:                        DecoderFunc(decodeHue),
			ids.Saturation:                 DecoderFunc(decodeSaturation),
			ids.SecuritySystemCurrentState: securityDecoder{kind: SecurityCurrent},
			ids.SecuritySystemTargetState:  securityDecoder{kind: SecurityTarget},
		},
	}
}

// Resolve returns the decoder registered for t.
func (r *Registry) Resolve(t model.CharacteristicType) (Decoder, bool) {
	d, ok := r.decoders[t]
	return d, ok
}

// Dispatch resolves the decoder for in.Characteristic and runs it into sink.
// Unmapped identifiers return ErrUnknownCharacteristic and emit nothing.
func (r *Registry) Dispatch(sink Sink, in Input) error {
	d, ok := r.Resolve(in.Characteristic.Type)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCharacteristic, in.Characteristic.Type)
	}
	Run(d, sink, in)
	return nil
}

// Types lists every registered identifier.
func (r *Registry) Types() []model.CharacteristicType {
	types := make([]model.CharacteristicType, 0, len(r.decoders))
	for t := range r.decoders {
		types = append(types, t)
	}
	return types
}
