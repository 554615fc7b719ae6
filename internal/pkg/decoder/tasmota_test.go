package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/taspromto/internal/pkg/metrics"
)

func TestState_SingleRelay(t *testing.T) {
	updates, err := State([]byte(`{"Time":"2026-08-27T10:00:00","Uptime":"0T10:21:16","POWER":"ON","Wifi":{"AP":1}}`))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindSwitchState, Sub: "", Value: 1}}, updates)
}

func TestState_MultipleRelays(t *testing.T) {
	updates, err := State([]byte(`{"POWER1":"ON","POWER2":"OFF"}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []Update{
		{Kind: metrics.KindSwitchState, Sub: "1", Value: 1},
		{Kind: metrics.KindSwitchState, Sub: "2", Value: 0},
	}, updates)
}

func TestState_NoRelayKeys(t *testing.T) {
	updates, err := State([]byte(`{"Time":"2026-08-27T10:00:00"}`))
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestState_Malformed(t *testing.T) {
	_, err := State([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPowerCommand(t *testing.T) {
	updates, err := PowerCommand("", []byte("ON"))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindSwitchState, Value: 1}}, updates)

	updates, err = PowerCommand("2", []byte("OFF"))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindSwitchState, Sub: "2", Value: 0}}, updates)

	_, err = PowerCommand("", []byte("TOGGLE"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSensor_Energy(t *testing.T) {
	payload := []byte(`{"Time":"2026-08-27T10:00:00","ENERGY":{"Power":42.5,"Today":1.25,"Yesterday":3.1,"Total":512.75}}`)
	updates, err := Sensor(payload)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Update{
		{Kind: metrics.KindPowerWatts, Value: 42.5},
		{Kind: metrics.KindEnergyToday, Value: 1.25},
		{Kind: metrics.KindEnergyYesterday, Value: 3.1},
		{Kind: metrics.KindEnergyTotal, Value: 512.75},
	}, updates)
}

func TestSensor_EnergyMissingFieldsYieldFewerUpdates(t *testing.T) {
	updates, err := Sensor([]byte(`{"ENERGY":{"Power":12}}`))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindPowerWatts, Value: 12}}, updates)
}

func TestSensor_CO2(t *testing.T) {
	updates, err := Sensor([]byte(`{"MHZ19B":{"CarbonDioxide":845}}`))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindCO2, Value: 845}}, updates)
}

func TestSensor_ImplausibleCO2IsMalformed(t *testing.T) {
	_, err := Sensor([]byte(`{"MHZ19B":{"CarbonDioxide":-3}}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Sensor([]byte(`{"MHZ19B":{"CarbonDioxide":900000}}`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSensor_OBIS(t *testing.T) {
	payload := []byte(`{"OBIS":{"Power":-230.5,"Total":8123.4,"Total_high":5000.1,"Total_low":3123.3,"Gas_total":2211.882}}`)
	updates, err := Sensor(payload)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Update{
		{Kind: metrics.KindPowerWatts, Value: -230.5},
		{Kind: metrics.KindEnergyTotal, Value: 8123.4},
		{Kind: metrics.KindEnergyTotalHigh, Value: 5000.1},
		{Kind: metrics.KindEnergyTotalLow, Value: 3123.3},
		{Kind: metrics.KindGasTotal, Value: 2211.882},
	}, updates)
}

func TestSensor_Particle(t *testing.T) {
	payload := []byte(`{"PMS5003":{"CF1":6,"PM1":6,"PM2.5":8,"PM10":9}}`)
	updates, err := Sensor(payload)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Update{
		{Kind: metrics.KindParticle, Sub: "pm1", Value: 6},
		{Kind: metrics.KindParticle, Sub: "pm2_5", Value: 8},
		{Kind: metrics.KindParticle, Sub: "pm10", Value: 9},
	}, updates)
}

func TestSensor_MiTemp(t *testing.T) {
	payload := []byte(`{"Time":"2026-08-27T10:00:00","MJ_HT_V1-351234":{"Temperature":21.5,"Humidity":60.1,"DewPoint":13.4,"Battery":87}}`)
	updates, err := Sensor(payload)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Update{
		{Kind: metrics.KindTemperature, Device: "351234", Value: 21.5},
		{Kind: metrics.KindHumidity, Device: "351234", Value: 60.1},
		{Kind: metrics.KindDewPoint, Device: "351234", Value: 13.4},
		{Kind: metrics.KindBattery, Device: "351234", Value: 87},
	}, updates)
}

func TestSensor_MiTempMacIsUppercased(t *testing.T) {
	updates, err := Sensor([]byte(`{"MJ_HT_V1-ab12cd":{"Temperature":19}}`))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindTemperature, Device: "AB12CD", Value: 19}}, updates)
}

func TestSensor_Malformed(t *testing.T) {
	_, err := Sensor([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestStatus_Firmware(t *testing.T) {
	payload := []byte(`{"StatusFWR":{"Version":"14.4.1(tasmota)","Hardware":"ESP8266EX"}}`)
	updates, err := Status(payload)
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindFirmware, Sub: "14.4.1(tasmota)", Value: 1}}, updates)
}

func TestStatus_WithoutFirmwareBlock(t *testing.T) {
	updates, err := Status([]byte(`{"Status":{"Module":1}}`))
	require.NoError(t, err)
	assert.Empty(t, updates)
}

// A malformed payload must not affect decoding of the next well-formed one.
func TestDecodeFailureIsolation(t *testing.T) {
	_, err := Sensor([]byte(`{"ENERGY":`))
	require.ErrorIs(t, err, ErrMalformed)

	updates, err := Sensor([]byte(`{"ENERGY":{"Power":42.5}}`))
	require.NoError(t, err)
	assert.Equal(t, []Update{{Kind: metrics.KindPowerWatts, Value: 42.5}}, updates)
}
