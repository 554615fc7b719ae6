package metrics

// Kind identifies a metric family. One family per kind of measurement, with
// the device identity carried as labels.
type Kind int

const (
	KindOnline Kind = iota
	KindSwitchState
	KindPowerWatts
	KindEnergyToday
	KindEnergyYesterday
	KindEnergyTotal
	KindEnergyTotalLow
	KindEnergyTotalHigh
	KindGasTotal
	KindWaterTotal
	KindCO2
	KindParticle
	KindTemperature
	KindHumidity
	KindDewPoint
	KindBattery
	KindBatteryOK
	KindFirmware
)

type kindSpec struct {
	family     string
	metricType string
	help       string
	// subLabel is the label name for the identity sub key, "" when the kind
	// has no sub dimension.
	subLabel string
}

var kindSpecs = map[Kind]kindSpec{
	KindOnline:          {"tasmota_online", "gauge", "Whether the device is currently connected to the broker.", ""},
	KindSwitchState:     {"switch_state", "gauge", "Relay state, 1 when switched on.", "relay"},
	KindPowerWatts:      {"power_watts", "gauge", "Instantaneous power draw in watts, negative when exporting.", ""},
	KindEnergyToday:     {"power_today_kwh", "gauge", "Energy used today in kWh.", ""},
	KindEnergyYesterday: {"power_yesterday_kwh", "gauge", "Energy used yesterday in kWh.", ""},
	KindEnergyTotal:     {"power_total_kwh", "counter", "Cumulative energy in kWh as reported by the meter.", ""},
	KindEnergyTotalLow:  {"power_total_low_kwh", "counter", "Cumulative energy on the low tariff in kWh.", ""},
	KindEnergyTotalHigh: {"power_total_high_kwh", "counter", "Cumulative energy on the high tariff in kWh.", ""},
	KindGasTotal:        {"gas_total_m3", "counter", "Cumulative gas volume in cubic metres.", ""},
	KindWaterTotal:      {"water_total_m3", "counter", "Cumulative water volume in cubic metres.", ""},
	KindCO2:             {"sensor_co2", "gauge", "CO2 concentration in ppm.", ""},
	KindParticle:        {"sensor_pm", "gauge", "Particle mass concentration in ug/m3 per size bucket.", "size"},
	KindTemperature:     {"sensor_temperature", "gauge", "Temperature in degrees celsius.", ""},
	KindHumidity:        {"sensor_humidity", "gauge", "Relative humidity in percent.", ""},
	KindDewPoint:        {"sensor_dewpoint", "gauge", "Dew point in degrees celsius.", ""},
	KindBattery:         {"sensor_battery", "gauge", "Sensor battery level in percent.", ""},
	KindBatteryOK:       {"sensor_battery_ok", "gauge", "Whether the sensor battery is healthy, 1 when ok.", ""},
	KindFirmware:        {"tasmota_firmware", "gauge", "Firmware version currently flashed, always 1.", "version"},
}

// Kinds returns all kinds in their stable render order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindSpecs))
	for k := KindOnline; k <= KindFirmware; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) Family() string     { return kindSpecs[k].family }
func (k Kind) MetricType() string { return kindSpecs[k].metricType }
func (k Kind) Help() string       { return kindSpecs[k].help }
func (k Kind) SubLabel() string   { return kindSpecs[k].subLabel }
