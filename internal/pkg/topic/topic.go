package topic

import "strings"

// Kind enumerates the topic families the exporter understands. The set is
// closed; anything else is Other and gets dropped by the router.
type Kind int

const (
	Other Kind = iota
	Lwt
	Power
	State
	Sensor
	Result
	Status
	RTL433
	Water
	Gas
	EnergyTariff1
	EnergyTariff2
	DSMRPower
)

// Device is the publishing device as derived from the topic. For tasmota
// topics this is the hostname segment, for rtl_433 the model segment and for
// DSMR bridge topics the bridge id.
type Device struct {
	Hostname string
}

// CommandTopic builds the cmnd topic used to send a command to the device.
func (d Device) CommandTopic(command string) string {
	return "cmnd/" + d.Hostname + "/" + command
}

type Topic struct {
	Kind   Kind
	Device Device
	// Relay is the relay index suffix of a stat POWER topic ("" for POWER,
	// "2" for POWER2, ...).
	Relay string
	Raw   string
}

// Parse classifies a raw mqtt topic. Unknown topics come back as Other; the
// broker carries plenty of unrelated traffic.
func Parse(raw string) Topic {
	parts := strings.Split(raw, "/")

	if parts[0] == "rtl_433" && len(parts) >= 2 {
		return Topic{Kind: RTL433, Device: Device{Hostname: parts[len(parts)-1]}, Raw: raw}
	}

	if len(parts) == 2 {
		device := Device{Hostname: parts[0]}
		switch parts[1] {
		case "water":
			return Topic{Kind: Water, Device: device, Raw: raw}
		case "gas_delivered":
			return Topic{Kind: Gas, Device: device, Raw: raw}
		case "energy_delivered_tariff1":
			return Topic{Kind: EnergyTariff1, Device: device, Raw: raw}
		case "energy_delivered_tariff2":
			return Topic{Kind: EnergyTariff2, Device: device, Raw: raw}
		case "power_delivered_l1":
			return Topic{Kind: DSMRPower, Device: device, Raw: raw}
		}
	}

	if len(parts) == 3 {
		device := Device{Hostname: parts[1]}
		switch {
		case parts[0] == "tele" && parts[2] == "LWT":
			return Topic{Kind: Lwt, Device: device, Raw: raw}
		case parts[0] == "tele" && parts[2] == "STATE":
			return Topic{Kind: State, Device: device, Raw: raw}
		case parts[0] == "tele" && parts[2] == "SENSOR":
			return Topic{Kind: Sensor, Device: device, Raw: raw}
		case parts[0] == "stat" && strings.HasPrefix(parts[2], "POWER"):
			return Topic{Kind: Power, Device: device, Relay: strings.TrimPrefix(parts[2], "POWER"), Raw: raw}
		case parts[0] == "stat" && parts[2] == "RESULT":
			return Topic{Kind: Result, Device: device, Raw: raw}
		case parts[0] == "stat" && (parts[2] == "STATUS" || parts[2] == "STATUS2"):
			return Topic{Kind: Status, Device: device, Raw: raw}
		}
	}

	return Topic{Kind: Other, Raw: raw}
}
