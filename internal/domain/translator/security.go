package translator

import (
	"fibaro-hap-bridge/internal/domain/model"
)

// SecurityKind selects the enumeration space of a security system lookup.
type SecurityKind int

const (
	SecurityCurrent SecurityKind = iota
	SecurityTarget
)

var currentSecurityStates = map[model.SecurityStatus]int{
	model.SecurityAwayArmed:      model.SecurityCurrentAwayArm,
	model.SecurityDisarmed:       model.SecurityCurrentDisarmed,
	model.SecurityNightArmed:     model.SecurityCurrentNightArm,
	model.SecurityStayArmed:      model.SecurityCurrentStayArm,
	model.SecurityAlarmTriggered: model.SecurityCurrentAlarmTriggered,
}

// Target states have no alarm-triggered member.
var targetSecurityStates = map[model.SecurityStatus]int{
	model.SecurityAwayArmed:  model.SecurityTargetAwayArm,
	model.SecurityDisarmed:   model.SecurityTargetDisarm,
	model.SecurityNightArmed: model.SecurityTargetNightArm,
	model.SecurityStayArmed:  model.SecurityTargetStayArm,
}

// SecurityState maps a hub status into the enumeration space of kind.
// Unknown statuses fall back to disarm.
func SecurityState(kind SecurityKind, status model.SecurityStatus) int {
	states := currentSecurityStates
	if kind == SecurityTarget {
		states = targetSecurityStates
	}
	if state, ok := states[status]; ok {
		return state
	}
	return model.SecurityTargetDisarm
}

type securityDecoder struct {
	kind SecurityKind
}

func (d securityDecoder) Decode(in Input) (interface{}, error) {
	return SecurityState(d.kind, in.Security), nil
}
