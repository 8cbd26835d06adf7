package models

import (
	"strconv"
	"time"

	"github.com/insightfinder/arris-agent/influx"
)

// Modulation is the channel modulation scheme reported by the modem.
type Modulation int

const (
	ModulationUnknown Modulation = iota
	ModulationQAM256
	ModulationOFDMPLC
	ModulationSCQAM
)

func (m Modulation) String() string {
	switch m {
	case ModulationQAM256:
		return "QAM-256"
	case ModulationOFDMPLC:
		return "OFDM-PLC"
	case ModulationSCQAM:
		return "SC-QAM"
	default:
		return "Unknown"
	}
}

// ParseModulation maps the modem's modulation token to the enum. Tokens
// the firmware has not been observed to emit map to Unknown rather than
// failing, so a firmware update cannot break channel decoding.
func ParseModulation(token string) Modulation {
	switch token {
	case "QAM256":
		return ModulationQAM256
	case "OFDM PLC":
		return ModulationOFDMPLC
	case "SC-QAM":
		return ModulationSCQAM
	default:
		return ModulationUnknown
	}
}

// Level is the severity of a modem log entry.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "error"
	}
}

// LogEntry is one line of the modem's event log. All three fields
// participate in equality; the dedup window keys on the whole value.
type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
}

// Channel is one entry of the modem's channel table, either a
// downstream or an upstream channel.
type Channel interface {
	ToPoint(ts time.Time) influx.Point
}

type DownstreamChannel struct {
	ChannelID      uint8
	Modulation     Modulation
	LockStatus     bool
	Frequency      uint32
	Power          uint8
	SNR            uint8
	Corrected      uint32
	Uncorrectables uint32
}

type UpstreamChannel struct {
	ChannelID  uint8
	Modulation Modulation
	LockStatus bool
	Frequency  uint32
	Width      uint32
	Power      float64
}

func (c DownstreamChannel) ToPoint(ts time.Time) influx.Point {
	return influx.Point{
		Measurement: "modem_downstream_channel",
		Tags: map[string]string{
			"channel_id": strconv.Itoa(int(c.ChannelID)),
			"modulation": c.Modulation.String(),
		},
		Fields: map[string]interface{}{
			"lock_status":    c.LockStatus,
			"frequency":      int64(c.Frequency),
			"power":          int64(c.Power),
			"snr":            int64(c.SNR),
			"corrected":      int64(c.Corrected),
			"uncorrectables": int64(c.Uncorrectables),
		},
		Timestamp: ts,
	}
}

func (c UpstreamChannel) ToPoint(ts time.Time) influx.Point {
	return influx.Point{
		Measurement: "modem_upstream_channel",
		Tags: map[string]string{
			"channel_id": strconv.Itoa(int(c.ChannelID)),
			"modulation": c.Modulation.String(),
		},
		Fields: map[string]interface{}{
			"lock_status": c.LockStatus,
			"frequency":   int64(c.Frequency),
			"width":       int64(c.Width),
			"power":       c.Power,
		},
		Timestamp: ts,
	}
}
