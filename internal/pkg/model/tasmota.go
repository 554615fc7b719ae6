package model

import (
	"encoding/json"
	"strings"
)

type EnergyReading struct {
	Power     *float64 `json:"Power"`
	Today     *float64 `json:"Today"`
	Yesterday *float64 `json:"Yesterday"`
	Total     *float64 `json:"Total"`
}

type CO2Reading struct {
	CarbonDioxide *float64 `json:"CarbonDioxide"`
}

// OBISReading is the P1 smart meter block. Power is signed: positive when
// importing from the grid, negative when exporting.
type OBISReading struct {
	Power     *float64 `json:"Power"`
	Total     *float64 `json:"Total"`
	TotalHigh *float64 `json:"Total_high"`
	TotalLow  *float64 `json:"Total_low"`
	GasTotal  *float64 `json:"Gas_total"`
}

type ParticleReading struct {
	PM1  *float64 `json:"PM1"`
	PM25 *float64 `json:"PM2.5"`
	PM10 *float64 `json:"PM10"`
}

// ClimateReading is one Xiaomi temperature/humidity sensor as relayed by a
// tasmota bluetooth bridge.
type ClimateReading struct {
	Temperature *float64 `json:"Temperature"`
	Humidity    *float64 `json:"Humidity"`
	DewPoint    *float64 `json:"DewPoint"`
	Battery     *float64 `json:"Battery"`
}

const miTempKeyPrefix = "MJ_HT_V1"

// SensorPayload is the body of tele/<device>/SENSOR and of sensor sections
// in stat RESULT responses. Xiaomi climate sensors appear as dynamic
// "MJ_HT_V1-<mac suffix>" keys, collected into Climate keyed by the
// upper-cased mac suffix.
type SensorPayload struct {
	Energy  *EnergyReading
	MHZ19B  *CO2Reading
	OBIS    *OBISReading
	PMS5003 *ParticleReading
	Climate map[string]ClimateReading
}

func (p *SensorPayload) UnmarshalJSON(data []byte) error {
	type fixed struct {
		Energy  *EnergyReading   `json:"ENERGY"`
		MHZ19B  *CO2Reading      `json:"MHZ19B"`
		OBIS    *OBISReading     `json:"OBIS"`
		PMS5003 *ParticleReading `json:"PMS5003"`
	}
	var f fixed
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	p.Energy, p.MHZ19B, p.OBIS, p.PMS5003 = f.Energy, f.MHZ19B, f.OBIS, f.PMS5003

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if !strings.HasPrefix(key, miTempKeyPrefix) {
			continue
		}
		mac := strings.TrimPrefix(strings.TrimPrefix(key, miTempKeyPrefix), "-")
		if mac == "" {
			continue
		}
		var reading ClimateReading
		if err := json.Unmarshal(value, &reading); err != nil {
			// wrong shape for a climate entry, skip it rather than fail the payload
			continue
		}
		if p.Climate == nil {
			p.Climate = make(map[string]ClimateReading)
		}
		p.Climate[strings.ToUpper(mac)] = reading
	}
	return nil
}

// StatusPayload is the response to a "Status 2" command.
type StatusPayload struct {
	StatusFWR *FirmwareStatus `json:"StatusFWR"`
}

type FirmwareStatus struct {
	Version string `json:"Version"`
}
