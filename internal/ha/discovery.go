package ha

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tetragramaton/gasflow-go/internal/bridge"
)

const Manufacturer = "gasflow"

type Device struct {
	Identifiers   []string `json:"identifiers,omitempty"`
	Manufacturer  string   `json:"manufacturer,omitempty"`
	Model         string   `json:"model,omitempty"`
	Name          string   `json:"name,omitempty"`
	SuggestedArea string   `json:"suggested_area,omitempty"`
}

// Config is any discovery payload.
type Config interface {
	Marshal() ([]byte, error)
}

type SensorConfig struct {
	Name         string                 `json:"name"`
	UniqueID     string                 `json:"unique_id"`
	StateTopic   string                 `json:"state_topic"`
	ValueTpl     string                 `json:"value_template,omitempty"`
	DeviceClass  string                 `json:"device_class,omitempty"`
	StateClass   string                 `json:"state_class,omitempty"`
	UnitOfMeas   string                 `json:"unit_of_measurement,omitempty"`
	Device       *Device                `json:"device,omitempty"`
	QoS          int                    `json:"qos,omitempty"`
	Availability []map[string]string    `json:"availability,omitempty"`
	Extra        map[string]interface{} `json:"-"`
}

func (c *SensorConfig) Marshal() ([]byte, error) {
	type alias SensorConfig
	return withExtra(alias(*c), c.Extra)
}

// NumberConfig is a settable number; values are sent raw to CommandTopic.
type NumberConfig struct {
	Name         string                 `json:"name"`
	UniqueID     string                 `json:"unique_id"`
	CommandTopic string                 `json:"command_topic"`
	StateTopic   string                 `json:"state_topic,omitempty"`
	ValueTpl     string                 `json:"value_template,omitempty"`
	Min          float64                `json:"min"`
	Max          float64                `json:"max"`
	Step         float64                `json:"step,omitempty"`
	Mode         string                 `json:"mode,omitempty"`
	UnitOfMeas   string                 `json:"unit_of_measurement,omitempty"`
	Device       *Device                `json:"device,omitempty"`
	QoS          int                    `json:"qos,omitempty"`
	Availability []map[string]string    `json:"availability,omitempty"`
	Extra        map[string]interface{} `json:"-"`
}

func (c *NumberConfig) Marshal() ([]byte, error) {
	type alias NumberConfig
	return withExtra(alias(*c), c.Extra)
}

type SwitchConfig struct {
	Name         string                 `json:"name"`
	UniqueID     string                 `json:"unique_id"`
	CommandTopic string                 `json:"command_topic"`
	StateTopic   string                 `json:"state_topic,omitempty"`
	ValueTpl     string                 `json:"value_template,omitempty"`
	PayloadOn    string                 `json:"payload_on,omitempty"`
	PayloadOff   string                 `json:"payload_off,omitempty"`
	StateOn      string                 `json:"state_on,omitempty"`
	StateOff     string                 `json:"state_off,omitempty"`
	Retain       bool                   `json:"retain,omitempty"`
	Device       *Device                `json:"device,omitempty"`
	QoS          int                    `json:"qos,omitempty"`
	Availability []map[string]string    `json:"availability,omitempty"`
	Extra        map[string]interface{} `json:"-"`
}

func (c *SwitchConfig) Marshal() ([]byte, error) {
	type alias SwitchConfig
	return withExtra(alias(*c), c.Extra)
}

func withExtra(v interface{}, extra map[string]interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if extra == nil {
		return b, nil
	}
	var base map[string]interface{}
	if err := json.Unmarshal(b, &base); err != nil {
		return nil, err
	}
	for k, v := range extra {
		base[k] = v
	}
	return json.Marshal(base)
}

func TopicConfig(component, cap, unique string) string {
	return fmt.Sprintf("homeassistant/%s/%s/%s/config", component, unique, cap)
}

func TopicSensorConfig(cap, unique string) string {
	return TopicConfig("sensor", cap, unique)
}

// Entity is one discovery message.
type Entity struct {
	Topic  string
	Config Config
}

// Options shape the generated entities.
type Options struct {
	Prefix      string // device topic prefix, e.g. "gasflow"
	MaxSetpoint float64
}

// Entities maps announced capabilities to discovery configs. Unknown
// capabilities are skipped.
func Entities(meta bridge.Meta, opts Options) []Entity {
	unique := Sanitize(meta.DeviceID)
	topics := bridge.Topics{Prefix: opts.Prefix, DeviceID: meta.DeviceID}
	device := &Device{
		Identifiers:   []string{meta.DeviceID},
		Manufacturer:  Manufacturer,
		Model:         meta.Model,
		Name:          meta.DeviceID,
		SuggestedArea: meta.Area,
	}
	avail := Availability(topics)
	maxSP := opts.MaxSetpoint
	if maxSP <= 0 {
		maxSP = 1000
	}

	var out []Entity
	for _, c := range meta.Caps {
		switch c {
		case bridge.CapFlow:
			out = append(out, Entity{
				Topic: TopicSensorConfig("flow", unique),
				Config: &SensorConfig{
					Name:         fmt.Sprintf("%s flow", meta.DeviceID),
					UniqueID:     unique + "_flow",
					StateTopic:   topics.State(),
					ValueTpl:     valueIf(bridge.CapFlow, "value"),
					StateClass:   "measurement",
					UnitOfMeas:   "SCCM",
					Device:       device,
					Availability: avail,
				},
			})

		case bridge.CapSetpoint:
			out = append(out, Entity{
				Topic: TopicConfig("number", "setpoint", unique),
				Config: &NumberConfig{
					Name:         fmt.Sprintf("%s setpoint", meta.DeviceID),
					UniqueID:     unique + "_setpoint",
					CommandTopic: topics.Set("flow"),
					Min:          0,
					Max:          maxSP,
					Step:         0.001,
					Mode:         "box",
					UnitOfMeas:   "SCCM",
					Device:       device,
					Availability: avail,
				},
			})

		case bridge.CapGas:
			out = append(out, Entity{
				Topic: TopicConfig("number", "gas", unique),
				Config: &NumberConfig{
					Name:         fmt.Sprintf("%s gas", meta.DeviceID),
					UniqueID:     unique + "_gas",
					CommandTopic: topics.Set("gas"),
					Min:          0,
					Max:          65535,
					Step:         1,
					Mode:         "box",
					Device:       device,
					Availability: avail,
				},
			})

		case bridge.CapSwitch:
			out = append(out, Entity{
				Topic: TopicConfig("switch", "relay", unique),
				Config: &SwitchConfig{
					Name:         fmt.Sprintf("%s relay", meta.DeviceID),
					UniqueID:     unique + "_relay",
					CommandTopic: topics.Set("switch"),
					StateTopic:   topics.State(),
					ValueTpl:     valueIf(bridge.CapSwitch, "state"),
					PayloadOn:    "ON",
					PayloadOff:   "OFF",
					StateOn:      "ON",
					StateOff:     "OFF",
					Device:       device,
					Availability: avail,
				},
			})
		}
	}
	return out
}

// Availability points an entity at the bridge's retained status topic.
func Availability(t bridge.Topics) []map[string]string {
	return []map[string]string{{
		"topic":                 t.Status(),
		"payload_available":     bridge.StatusOnline,
		"payload_not_available": bridge.StatusOffline,
	}}
}

func valueIf(cap, field string) string {
	return fmt.Sprintf("{{ value_json.%s if value_json.cap == %q }}", field, cap)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

func Sanitize(s string) string {
	return strings.ToLower(unsafeChars.ReplaceAllString(s, "_"))
}
