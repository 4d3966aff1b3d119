package translator

import (
	"fibaro-hap-bridge/internal/domain/model"
)

func decodeTargetTemperature(in Input) (interface{}, error) {
	return parseFloat(in.Properties[model.PropTargetLevel]), nil
}

// Thermostats on the hub expose no mode, so both heating/cooling states read as heat.
func decodeHeatingCoolingState(in Input) (interface{}, error) {
	return model.HeatingCoolingHeat, nil
}

func decodeTemperatureDisplayUnits(in Input) (interface{}, error) {
	return model.DisplayUnitsCelsius, nil
}
