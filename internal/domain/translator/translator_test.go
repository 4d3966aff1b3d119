package translator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fibaro-hap-bridge/internal/domain/model"
)

var ids = model.HAPCharacteristicIDs()

func decode(t *testing.T, r *Registry, ct model.CharacteristicType, svc *model.Service, props model.Properties) (interface{}, error) {
	t.Helper()
	ch := model.NewCharacteristic("test", ct, model.Props{MinValue: 0, MaxValue: 100})
	var (
		got    interface{}
		gotErr error
		calls  int
	)
	sink := Callback(func(v interface{}, err error) {
		got, gotErr = v, err
		calls++
	})
	require.NoError(t, r.Dispatch(sink, Input{Characteristic: ch, Service: svc, Properties: props}))
	require.Equal(t, 1, calls, "completion must fire exactly once")
	return got, gotErr
}

func value(v string) model.Properties {
	return model.Properties{model.PropValue: v}
}

func TestBool(t *testing.T) {
	r := NewRegistry(ids)
	cases := map[string]bool{
		"true":  true,
		"false": false,
		"0":     false,
		"5":     true,
		"-3":    true,
		"0.4":   false,
		"abc":   true,
		"0abc":  false,
		"1abc":  true,
		" 0 ":   false,
		"0x0":   false,
	}
	for in, want := range cases {
		for _, ct := range []model.CharacteristicType{ids.On, ids.MotionDetected} {
			got, err := decode(t, r, ct, nil, value(in))
			assert.NoError(t, err)
			assert.Equal(t, want, got, "input %q", in)
		}
	}
}

func TestFloat(t *testing.T) {
	r := NewRegistry(ids)
	for _, ct := range []model.CharacteristicType{ids.CurrentTemperature, ids.CurrentRelativeHumidity, ids.CurrentAmbientLightLevel} {
		got, err := decode(t, r, ct, nil, value("21.5"))
		assert.NoError(t, err)
		assert.Equal(t, 21.5, got)

		got, _ = decode(t, r, ct, nil, value("21.5abc"))
		assert.Equal(t, 21.5, got)
		got, _ = decode(t, r, ct, nil, value("1e2"))
		assert.Equal(t, 100.0, got)

		assert.NotPanics(t, func() {
			got, err = decode(t, r, ct, nil, value("abc"))
		})
		assert.NoError(t, err)
		assert.True(t, math.IsNaN(got.(float64)))
	}

	got, err := decode(t, r, ids.TargetTemperature, nil, model.Properties{model.PropTargetLevel: "19", model.PropValue: "22"})
	assert.NoError(t, err)
	assert.Equal(t, 19.0, got)
}

func TestBrightness_Dimmer(t *testing.T) {
	r := NewRegistry(ids)
	svc := &model.Service{Kind: model.ServiceLightbulb}

	got, _ := decode(t, r, ids.Brightness, svc, value("99"))
	assert.Equal(t, 100.0, got)

	got, _ = decode(t, r, ids.Brightness, svc, value("42"))
	assert.Equal(t, 42.0, got)
}

func TestPosition(t *testing.T) {
	r := NewRegistry(ids)
	for _, ct := range []model.CharacteristicType{ids.CurrentPosition, ids.TargetPosition} {
		got, err := decode(t, r, ct, nil, value("99"))
		assert.NoError(t, err)
		assert.Equal(t, 100, got)

		got, err = decode(t, r, ct, nil, value("0"))
		assert.NoError(t, err)
		assert.Equal(t, 0, got)

		got, err = decode(t, r, ct, nil, value("50%"))
		assert.NoError(t, err)
		assert.Equal(t, 50, got)

		got, err = decode(t, r, ct, nil, value("1e2"))
		assert.NoError(t, err)
		assert.Equal(t, 1, got)

		got, err = decode(t, r, ct, nil, value("150"))
		assert.ErrorIs(t, err, ErrInvalidWindowPosition)
		assert.Nil(t, got)

		got, err = decode(t, r, ct, nil, value("closed"))
		assert.ErrorIs(t, err, ErrInvalidWindowPosition)
		assert.Nil(t, got)
	}

	got, _ := decode(t, r, ids.PositionState, nil, value("50"))
	assert.Equal(t, model.PositionStopped, got)
}

func TestPosition_DeclaredBounds(t *testing.T) {
	r := NewRegistry(ids)
	ch := model.NewCharacteristic("pos", ids.CurrentPosition, model.Props{MinValue: 10, MaxValue: 90})
	var gotErr error
	require.NoError(t, r.Dispatch(Callback(func(_ interface{}, err error) { gotErr = err }), Input{
		Characteristic: ch,
		Properties:     value("5"),
	}))
	assert.ErrorIs(t, gotErr, ErrInvalidWindowPosition)
}

func TestEnumerations(t *testing.T) {
	r := NewRegistry(ids)
	tests := []struct {
		ct    model.CharacteristicType
		props model.Properties
		want  interface{}
	}{
		{ids.ContactSensorState, value("false"), model.ContactDetected},
		{ids.ContactSensorState, value("true"), model.ContactNotDetected},
		{ids.ContactSensorState, value("0"), model.ContactNotDetected},
		{ids.LeakDetected, value("true"), model.LeakDetected},
		{ids.LeakDetected, value("false"), model.LeakNotDetected},
		{ids.SmokeDetected, value("true"), model.SmokeDetected},
		{ids.SmokeDetected, value("1"), model.SmokeNotDetected},
		{ids.LockCurrentState, value("true"), model.LockSecured},
		{ids.LockTargetState, value("false"), model.LockUnsecured},
		{ids.OutletInUse, model.Properties{model.PropPower: "1.5"}, true},
		{ids.OutletInUse, model.Properties{model.PropPower: "1.0"}, false},
		{ids.OutletInUse, model.Properties{model.PropPower: "n/a"}, false},
		{ids.OutletInUse, model.Properties{model.PropPower: "5 W"}, true},
		{ids.OutletInUse, model.Properties{model.PropPower: "0.5 W"}, false},
		{ids.CurrentHeatingCoolingState, nil, model.HeatingCoolingHeat},
		{ids.TargetHeatingCoolingState, nil, model.HeatingCoolingHeat},
		{ids.TemperatureDisplayUnits, nil, model.DisplayUnitsCelsius},
	}
	for _, tt := range tests {
		got, err := decode(t, r, tt.ct, nil, tt.props)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %v", tt.ct, tt.props)
	}
}

func TestParseNumbers(t *testing.T) {
	floats := map[string]float64{
		"21.5":    21.5,
		"21.5abc": 21.5,
		"  -3.25": -3.25,
		"+4":      4,
		".5":      0.5,
		"5.":      5,
		"1e2":     100,
		"1e":      1,
		"2.5E-1x": 0.25,
		"5 W":     5,
	}
	for in, want := range floats {
		assert.Equal(t, want, parseFloat(in), "parseFloat(%q)", in)
	}
	for _, in := range []string{"", "abc", ".", "-", "e5", "W 5"} {
		assert.True(t, math.IsNaN(parseFloat(in)), "parseFloat(%q)", in)
	}
	assert.True(t, math.IsInf(parseFloat("-Infinity"), -1))

	ints := map[string]float64{
		"50":   50,
		"50.7": 50,
		"50%":  50,
		"1e2":  1,
		"-12a": -12,
		"0x1A": 26,
		"0abc": 0,
	}
	for in, want := range ints {
		assert.Equal(t, want, parseInt(in), "parseInt(%q)", in)
	}
	for _, in := range []string{"", "abc", "0x", ".5", "-"} {
		assert.True(t, math.IsNaN(parseInt(in)), "parseInt(%q)", in)
	}
}

func TestRGBToHSV(t *testing.T) {
	red := RGBToHSV(255, 0, 0)
	assert.InDelta(t, 0.0, red.Hue, 0.001)
	assert.InDelta(t, 100.0, red.Saturation, 0.001)
	assert.InDelta(t, 100.0, red.Value, 0.001)

	assert.InDelta(t, 120.0, RGBToHSV(0, 255, 0).Hue, 0.001)
	assert.InDelta(t, 240.0, RGBToHSV(0, 0, 255).Hue, 0.001)
	assert.InDelta(t, 300.0, RGBToHSV(255, 0, 255).Hue, 0.001)

	black := RGBToHSV(0, 0, 0)
	assert.Equal(t, model.HSV{}, black)

	gray := RGBToHSVFrom(model.RGB{Red: 128, Green: 128, Blue: 128})
	assert.Equal(t, 0.0, gray.Hue)
	assert.Equal(t, 0.0, gray.Saturation)
	assert.InDelta(t, 50.2, gray.Value, 0.01)

	assert.Equal(t, RGBToHSV(12, 200, 99), RGBToHSVFrom(model.RGB{Red: 12, Green: 200, Blue: 99}))
}

func TestDeriveColor(t *testing.T) {
	svc := &model.Service{Color: &model.ColorState{}}
	hsv := DeriveColor("0,255,0", svc)

	assert.InDelta(t, 120.0, hsv.Hue, 0.001)
	assert.Equal(t, model.RGB{Red: 0, Green: 255, Blue: 0}, svc.Color.RGB)
	assert.Equal(t, hsv, svc.Color.HSV)
	assert.Equal(t, "0,255,0", svc.Color.Source())

	malformed := DeriveColor("red", svc)
	assert.True(t, math.IsNaN(malformed.Hue))
	assert.Equal(t, model.RGB{Red: 0, Green: 255, Blue: 0}, svc.Color.RGB)

	huge := DeriveColor("1000000000000000000000000,0,0", svc)
	assert.True(t, math.IsNaN(huge.Hue))
	assert.Equal(t, model.RGB{Red: 0, Green: 255, Blue: 0}, svc.Color.RGB)

	// Channels stop at the first non-digit.
	assert.InDelta(t, 0.0, DeriveColor("1e300,0,0", svc).Hue, 0.001)
	assert.Equal(t, model.RGB{Red: 1}, svc.Color.RGB)

	// Without a color state nothing is stored.
	assert.InDelta(t, 100.0, DeriveColor("255,0,0", &model.Service{}).Value, 0.001)
	assert.InDelta(t, 100.0, DeriveColor("255,0,0", nil).Value, 0.001)
}

func TestColorDecoders_Idempotent(t *testing.T) {
	r := NewRegistry(ids)
	svc := &model.Service{Kind: model.ServiceLightbulb, Color: &model.ColorState{}}
	props := model.Properties{model.PropColor: "255,128,0", model.PropValue: "99"}

	first := make([]interface{}, 0, 3)
	for _, ct := range []model.CharacteristicType{ids.Brightness, ids.Hue, ids.Saturation} {
		got, err := decode(t, r, ct, svc, props)
		require.NoError(t, err)
		first = append(first, got)
	}
	assert.Equal(t, []interface{}{100.0, 30.0, 100.0}, first)

	for i := 0; i < 3; i++ {
		for j, ct := range []model.CharacteristicType{ids.Brightness, ids.Hue, ids.Saturation} {
			got, _ := decode(t, r, ct, svc, props)
			assert.Equal(t, first[j], got)
		}
	}
}

func TestColorDecoders_ShareOneDerivation(t *testing.T) {
	r := NewRegistry(ids)
	// A source that could never parse proves the decoders read the stored state.
	cs := &model.ColorState{}
	cs.Update("shared", model.RGB{Red: 1, Green: 2, Blue: 3}, model.HSV{Hue: 210.4, Saturation: 66.6, Value: 1.2})
	svc := &model.Service{Kind: model.ServiceLightbulb, Color: cs}
	props := model.Properties{model.PropColor: "shared"}

	hue, _ := decode(t, r, ids.Hue, svc, props)
	sat, _ := decode(t, r, ids.Saturation, svc, props)
	bri, _ := decode(t, r, ids.Brightness, svc, props)

	assert.Equal(t, 210.0, hue)
	assert.Equal(t, 67.0, sat)
	assert.Equal(t, 1.0, bri)
	assert.Equal(t, model.RGB{Red: 1, Green: 2, Blue: 3}, cs.RGB)
}

func TestSecurityState(t *testing.T) {
	assert.Equal(t, model.SecurityCurrentAlarmTriggered, SecurityState(SecurityCurrent, model.SecurityAlarmTriggered))
	assert.Equal(t, model.SecurityTargetDisarm, SecurityState(SecurityTarget, model.SecurityAlarmTriggered))
	assert.Equal(t, model.SecurityTargetDisarm, SecurityState(SecurityTarget, "Panic"))
	assert.Equal(t, model.SecurityTargetDisarm, SecurityState(SecurityCurrent, ""))
	assert.Equal(t, model.SecurityCurrentDisarmed, SecurityState(SecurityCurrent, model.SecurityDisarmed))
	assert.Equal(t, model.SecurityTargetDisarm, SecurityState(SecurityTarget, model.SecurityDisarmed))
	assert.Equal(t, model.SecurityTargetNightArm, SecurityState(SecurityTarget, model.SecurityNightArmed))
	assert.Equal(t, model.SecurityCurrentStayArm, SecurityState(SecurityCurrent, model.SecurityStayArmed))

	_, inTarget := targetSecurityStates[model.SecurityAlarmTriggered]
	assert.False(t, inTarget)

	r := NewRegistry(ids)
	var got interface{}
	ch := model.NewCharacteristic("alarm", ids.SecuritySystemCurrentState, model.Props{})
	require.NoError(t, r.Dispatch(Callback(func(v interface{}, _ error) { got = v }), Input{
		Characteristic: ch,
		Security:       model.SecurityAwayArmed,
	}))
	assert.Equal(t, model.SecurityCurrentAwayArm, got)
}

func TestDirectSink(t *testing.T) {
	r := NewRegistry(ids)
	ch := model.NewCharacteristic("temp", ids.CurrentTemperature, model.Props{})
	require.NoError(t, r.Dispatch(SinkFor(nil), Input{Characteristic: ch, Properties: value("18.25")}))
	assert.Equal(t, 18.25, ch.Value())
	assert.Equal(t, model.OriginHub, ch.Origin())

	pos := model.NewCharacteristic("pos", ids.CurrentPosition, model.Props{MinValue: 0, MaxValue: 100})
	pos.SetValue(40, model.OriginUser)
	var failed error
	require.NoError(t, r.Dispatch(Direct{OnError: func(_ *model.Characteristic, err error) { failed = err }}, Input{
		Characteristic: pos,
		Properties:     value("300"),
	}))
	assert.ErrorIs(t, failed, ErrInvalidWindowPosition)
	assert.Equal(t, 40, pos.Value())
	assert.Equal(t, model.OriginUser, pos.Origin())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(ids)
	assert.Len(t, r.Types(), 23)

	_, ok := r.Resolve(model.CharacteristicType{})
	assert.False(t, ok)

	called := false
	err := r.Dispatch(SinkFor(func(interface{}, error) { called = true }), Input{
		Characteristic: model.NewCharacteristic("x", model.CharacteristicType{}, model.Props{}),
	})
	assert.ErrorIs(t, err, ErrUnknownCharacteristic)
	assert.False(t, called)
}

func TestCalibrate(t *testing.T) {
	r := NewRegistry(ids)
	base, _ := r.Resolve(ids.CurrentTemperature)

	d, err := Calibrate(base, "x - 0.5")
	require.NoError(t, err)
	got, err := d.Decode(Input{Properties: value("21.5")})
	assert.NoError(t, err)
	assert.Equal(t, 21.0, got)

	got, _ = d.Decode(Input{Properties: value("abc")})
	assert.True(t, math.IsNaN(got.(float64)))

	same, err := Calibrate(base, " ")
	require.NoError(t, err)
	assert.NotNil(t, same)

	_, err = Calibrate(base, "x *")
	assert.Error(t, err)

	onOff, _ := r.Resolve(ids.On)
	d, err = Calibrate(onOff, "x * 2")
	require.NoError(t, err)
	got, _ = d.Decode(Input{Properties: value("true")})
	assert.Equal(t, true, got)
}

func TestHueLight(t *testing.T) {
	r := NewRegistry(ids)
	on := model.NewCharacteristic("On", ids.On, model.Props{})
	on.SetValue(true, model.OriginHub)
	cs := &model.ColorState{}
	acc := &model.Accessory{
		ID:   "7",
		Name: "Kitchen",
		Service: &model.Service{
			Kind:            model.ServiceLightbulb,
			Characteristics: []*model.Characteristic{on},
			Color:           cs,
		},
	}
	DeriveColor("0,0,255", acc.Service)

	light, ok := r.HueLight(acc)
	require.True(t, ok)
	assert.Equal(t, "Extended color light", light.Type)
	assert.True(t, light.State.On)
	assert.Equal(t, uint8(254), light.State.Bri)
	assert.Equal(t, uint8(254), light.State.Sat)
	assert.Equal(t, uint16(43690), light.State.Hue)
	assert.Equal(t, "hs", light.State.ColorMode)

	bri := model.NewCharacteristic("Brightness", ids.Brightness, model.Props{})
	bri.SetValue(50.0, model.OriginHub)
	dimmer := &model.Accessory{ID: "8", Service: &model.Service{
		Kind:            model.ServiceLightbulb,
		Characteristics: []*model.Characteristic{bri},
	}}
	light, ok = r.HueLight(dimmer)
	require.True(t, ok)
	assert.Equal(t, "Dimmable light", light.Type)
	assert.Equal(t, uint8(127), light.State.Bri)
	assert.False(t, light.State.On)

	_, ok = r.HueLight(&model.Accessory{Service: &model.Service{Kind: model.ServiceLock}})
	assert.False(t, ok)
}
