package model

// ServiceKind names the accessory service a hub device is exposed as.
type ServiceKind string

const (
	ServiceLightbulb      ServiceKind = "lightbulb"
	ServiceSwitch         ServiceKind = "switch"
	ServiceOutlet         ServiceKind = "outlet"
	ServiceWindowCovering ServiceKind = "window_covering"
	ServiceThermostat     ServiceKind = "thermostat"
	ServiceSensor         ServiceKind = "sensor"
	ServiceLock           ServiceKind = "lock"
	ServiceSecurity       ServiceKind = "security_system"
)

// Well-known property keys reported by the hub.
const (
	PropValue       = "value"
	PropColor       = "color"
	PropPower       = "power"
	PropTargetLevel = "targetLevel"
)

// Properties is a snapshot of raw device properties as last observed on the hub.
type Properties map[string]string

// SecurityStatus is the hub's named alarm state.
type SecurityStatus string

const (
	SecurityAwayArmed      SecurityStatus = "AwayArmed"
	SecurityDisarmed       SecurityStatus = "Disarmed"
	SecurityNightArmed     SecurityStatus = "NightArmed"
	SecurityStayArmed      SecurityStatus = "StayArmed"
	SecurityAlarmTriggered SecurityStatus = "AlarmTriggered"
)

// Identity ties an accessory to the hub device it mirrors.
type Identity struct {
	AccessoryID string
	DeviceID    string
}

// Service is the state of one accessory service as seen by the translator.
// Color is nil for services without an HSV color state.
type Service struct {
	Kind            ServiceKind
	Characteristics []*Characteristic
	Color           *ColorState
}

// Characteristic returns the service characteristic of type t, if any.
func (s *Service) Characteristic(t CharacteristicType) *Characteristic {
	for _, c := range s.Characteristics {
		if c.Type == t {
			return c
		}
	}
	return nil
}

type Accessory struct {
	ID       string
	Name     string
	Identity Identity
	Service  *Service
}
