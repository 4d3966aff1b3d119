package translator

import (
	"fibaro-hap-bridge/internal/domain/model"
)

func decodeBool(in Input) (interface{}, error) {
	switch v := in.Properties[model.PropValue]; v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		// NaN compares unequal to zero, so unparsable text reads as true.
		return parseInt(v) != 0, nil
	}
}

func decodeFloat(in Input) (interface{}, error) {
	return parseFloat(in.Properties[model.PropValue]), nil
}

// Contact is inverted: the hub reports "false" while the contact is closed.
func decodeContactSensorState(in Input) (interface{}, error) {
	if in.Properties[model.PropValue] == "false" {
		return model.ContactDetected, nil
	}
	return model.ContactNotDetected, nil
}

func decodeLeakDetected(in Input) (interface{}, error) {
	if in.Properties[model.PropValue] == "true" {
		return model.LeakDetected, nil
	}
	return model.LeakNotDetected, nil
}

func decodeSmokeDetected(in Input) (interface{}, error) {
	if in.Properties[model.PropValue] == "true" {
		return model.SmokeDetected, nil
	}
	return model.SmokeNotDetected, nil
}

func decodeOutletInUse(in Input) (interface{}, error) {
	return parseFloat(in.Properties[model.PropPower]) > 1.0, nil
}

func decodeLockState(in Input) (interface{}, error) {
	if in.Properties[model.PropValue] == "true" {
		return model.LockSecured, nil
	}
	return model.LockUnsecured, nil
}
