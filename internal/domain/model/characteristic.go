package model

import (
	"strings"

	"github.com/google/uuid"
)

// CharacteristicType identifies the semantic type of a characteristic.
type CharacteristicType uuid.UUID

func (t CharacteristicType) String() string {
	return uuid.UUID(t).String()
}

// hapType expands a short HAP type code into its full UUID form.
func hapType(short string) CharacteristicType {
	padded := strings.Repeat("0", 8-len(short)) + short
	return CharacteristicType(uuid.MustParse(padded + "-0000-1000-8000-0026BB765291"))
}

// CharacteristicIDs is the identifier space the translator registry is built from.
type CharacteristicIDs struct {
	On                         CharacteristicType
	Brightness                 CharacteristicType
	PositionState              CharacteristicType
	CurrentPosition            CharacteristicType
	TargetPosition             CharacteristicType
	MotionDetected             CharacteristicType
	CurrentTemperature         CharacteristicType
	TargetTemperature          CharacteristicType
	CurrentRelativeHumidity    CharacteristicType
	ContactSensorState         CharacteristicType
	LeakDetected               CharacteristicType
	SmokeDetected              CharacteristicType
	CurrentAmbientLightLevel   CharacteristicType
	OutletInUse                CharacteristicType
	LockCurrentState           CharacteristicType
	LockTargetState            CharacteristicType
	CurrentHeatingCoolingState CharacteristicType
	TargetHeatingCoolingState  CharacteristicType
	TemperatureDisplayUnits    CharacteristicType
	Hue                        CharacteristicType
	Saturation                 CharacteristicType
	SecuritySystemCurrentState CharacteristicType
	SecuritySystemTargetState  CharacteristicType
}

var hapIDs = CharacteristicIDs{
	On:                         hapType("25"),
	Brightness:                 hapType("8"),
	PositionState:              hapType("72"),
	CurrentPosition:            hapType("6D"),
	TargetPosition:             hapType("7C"),
	MotionDetected:             hapType("22"),
	CurrentTemperature:         hapType("11"),
	TargetTemperature:          hapType("35"),
	CurrentRelativeHumidity:    hapType("10"),
	ContactSensorState:         hapType("6A"),
	LeakDetected:               hapType("70"),
	SmokeDetected:              hapType("76"),
	CurrentAmbientLightLevel:   hapType("6B"),
	OutletInUse:                hapType("26"),
	LockCurrentState:           hapType("1D"),
	LockTargetState:            hapType("1E"),
	CurrentHeatingCoolingState: hapType("F"),
	TargetHeatingCoolingState:  hapType("33"),
	TemperatureDisplayUnits:    hapType("36"),
	Hue:                        hapType("13"),
	Saturation:                 hapType("2F"),
	SecuritySystemCurrentState: hapType("66"),
	SecuritySystemTargetState:  hapType("67"),
}

// HAPCharacteristicIDs returns the standard HomeKit identifier space.
func HAPCharacteristicIDs() CharacteristicIDs {
	return hapIDs
}

var characteristicNames = map[string]CharacteristicType{
	"on":                         hapIDs.On,
	"brightness":                 hapIDs.Brightness,
	"positionstate":              hapIDs.PositionState,
	"currentposition":            hapIDs.CurrentPosition,
	"targetposition":             hapIDs.TargetPosition,
	"motiondetected":             hapIDs.MotionDetected,
	"currenttemperature":         hapIDs.CurrentTemperature,
	"targettemperature":          hapIDs.TargetTemperature,
	"currentrelativehumidity":    hapIDs.CurrentRelativeHumidity,
	"contactsensorstate":         hapIDs.ContactSensorState,
	"leakdetected":               hapIDs.LeakDetected,
	"smokedetected":              hapIDs.SmokeDetected,
	"currentambientlightlevel":   hapIDs.CurrentAmbientLightLevel,
	"outletinuse":                hapIDs.OutletInUse,
	"lockcurrentstate":           hapIDs.LockCurrentState,
	"locktargetstate":            hapIDs.LockTargetState,
	"currentheatingcoolingstate": hapIDs.CurrentHeatingCoolingState,
	"targetheatingcoolingstate":  hapIDs.TargetHeatingCoolingState,
	"temperaturedisplayunits":    hapIDs.TemperatureDisplayUnits,
	"hue":                        hapIDs.Hue,
	"saturation":                 hapIDs.Saturation,
	"securitysystemcurrentstate": hapIDs.SecuritySystemCurrentState,
	"securitysystemtargetstate":  hapIDs.SecuritySystemTargetState,
}

// CharacteristicTypeByName resolves a config name like "Brightness" or
// "current_position" to its identifier. Matching ignores case and underscores.
func CharacteristicTypeByName(name string) (CharacteristicType, bool) {
	key := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	t, ok := characteristicNames[key]
	return t, ok
}

// HAP enumeration codes.
const (
	ContactDetected    = 0
	ContactNotDetected = 1

	LeakNotDetected = 0
	LeakDetected    = 1

	SmokeNotDetected = 0
	SmokeDetected    = 1

	LockUnsecured = 0
	LockSecured   = 1

	PositionDecreasing = 0
	PositionIncreasing = 1
	PositionStopped    = 2

	HeatingCoolingOff  = 0
	HeatingCoolingHeat = 1
	HeatingCoolingCool = 2
	HeatingCoolingAuto = 3

	DisplayUnitsCelsius    = 0
	DisplayUnitsFahrenheit = 1

	SecurityCurrentStayArm        = 0
	SecurityCurrentAwayArm        = 1
	SecurityCurrentNightArm       = 2
	SecurityCurrentDisarmed       = 3
	SecurityCurrentAlarmTriggered = 4

	SecurityTargetStayArm  = 0
	SecurityTargetAwayArm  = 1
	SecurityTargetNightArm = 2
	SecurityTargetDisarm   = 3
)

// Origin tags who caused a characteristic value change.
type Origin string

const (
	OriginHub  Origin = "fromHub"
	OriginUser Origin = "fromUser"
)

// Props are the declared numeric bounds of a characteristic.
type Props struct {
	MinValue float64 `json:"minValue"`
	MaxValue float64 `json:"maxValue"`
}

// Characteristic is one typed value of an accessory service.
type Characteristic struct {
	Name  string
	Type  CharacteristicType
	Props Props

	value  interface{}
	origin Origin
}

func NewCharacteristic(name string, t CharacteristicType, props Props) *Characteristic {
	return &Characteristic{Name: name, Type: t, Props: props}
}

// SetValue assigns the current value and records where it came from.
func (c *Characteristic) SetValue(v interface{}, origin Origin) {
	c.value = v
	c.origin = origin
}

func (c *Characteristic) Value() interface{} {
	return c.value
}

func (c *Characteristic) Origin() Origin {
	return c.origin
}
