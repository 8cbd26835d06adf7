package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// MalformedFieldError reports a delimited modem field that did not match
// its expected grammar. Raw carries the offending record text so a
// firmware change to the grammar is diagnosable from the error alone.
type MalformedFieldError struct {
	Field string
	Raw   string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s field %q: %v", e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("malformed %s field: unable to parse %q", e.Field, e.Raw)
}

func (e *MalformedFieldError) Unwrap() error { return e.Err }

const (
	logRecordSeparator     = "}-{"
	channelRecordSeparator = "|+|"
	logTimeLayout          = "02/01/2006 15:04:05"
)

var (
	uptimePattern = regexp.MustCompile(`(?P<days>\d+) days (?P<hours>\d+)h:(?P<minutes>\d+)m:(?P<seconds>\d+)s`)
	logPattern    = regexp.MustCompile(`0\^(?P<time>[:\d]+)\^(?P<date>[/\d]+)\^(?P<level>\d)\^(?P<message>.*)`)

	// The two channel grammars share a prefix but differ in arity, so a
	// record is tried against downstream first and upstream second.
	downstreamPattern = regexp.MustCompile(`(?:\d+)\^(?P<lock_status>\w+)\^(?P<modulation>[\w\d ]+)\^(?P<channel_id>\d+)\^(?P<frequency>\d+)\^(?P<power>\d+)\^(?P<snr>\d+)\^(?P<corrected>\d+)\^(?P<uncorrectables>\d+)\^`)
	upstreamPattern   = regexp.MustCompile(`(?:\d+)\^(?P<lock_status>\w+)\^(?P<modulation>[\w\d -]+)\^(?P<channel_id>\d+)\^(?P<width>\d+)\^(?P<frequency>\d+)\^(?P<power>[\d.]+)\^`)
)

// ParseUptime parses the modem's "<D> days <H>h:<M>m:<S>s" uptime string.
func ParseUptime(s string) (time.Duration, error) {
	m := uptimePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &MalformedFieldError{Field: "uptime", Raw: s}
	}
	days, err := strconv.ParseUint(m[uptimePattern.SubexpIndex("days")], 10, 32)
	if err != nil {
		return 0, &MalformedFieldError{Field: "uptime", Raw: s, Err: err}
	}
	hours, err := strconv.ParseUint(m[uptimePattern.SubexpIndex("hours")], 10, 32)
	if err != nil {
		return 0, &MalformedFieldError{Field: "uptime", Raw: s, Err: err}
	}
	minutes, err := strconv.ParseUint(m[uptimePattern.SubexpIndex("minutes")], 10, 32)
	if err != nil {
		return 0, &MalformedFieldError{Field: "uptime", Raw: s, Err: err}
	}
	seconds, err := strconv.ParseUint(m[uptimePattern.SubexpIndex("seconds")], 10, 32)
	if err != nil {
		return 0, &MalformedFieldError{Field: "uptime", Raw: s, Err: err}
	}
	total := days*86400 + hours*3600 + minutes*60 + seconds
	return time.Duration(total) * time.Second, nil
}

// ParseSystemTime parses the modem's locale-formatted clock string. The
// modem already reports UTC, so the wall time is taken as-is rather than
// converted from a local zone.
func ParseSystemTime(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, &MalformedFieldError{Field: "system time", Raw: s, Err: err}
	}
	return t.UTC(), nil
}

// ParseLogList decodes the modem's event log blob: records joined by
// "}-{", each of the shape 0^HH:MM:SS^DD/MM/YYYY^<level digit>^<message>.
func ParseLogList(s string) ([]LogEntry, error) {
	var entries []LogEntry
	for _, record := range splitRecords(s, logRecordSeparator) {
		m := logPattern.FindStringSubmatch(record)
		if m == nil {
			return nil, &MalformedFieldError{Field: "log list", Raw: record}
		}
		datetime := m[logPattern.SubexpIndex("date")] + " " + m[logPattern.SubexpIndex("time")]
		ts, err := time.Parse(logTimeLayout, datetime)
		if err != nil {
			return nil, &MalformedFieldError{Field: "log list", Raw: record, Err: err}
		}
		entries = append(entries, LogEntry{
			Timestamp: ts,
			Level:     levelFromDigit(m[logPattern.SubexpIndex("level")]),
			Message:   m[logPattern.SubexpIndex("message")],
		})
	}
	return entries, nil
}

func levelFromDigit(digit string) Level {
	switch digit {
	case "4":
		return LevelWarn
	case "5":
		return LevelInfo
	case "6":
		return LevelDebug
	default:
		return LevelError
	}
}

// ParseChannelList decodes the modem's channel table blob: records joined
// by "|+|", each matching either the downstream or the upstream grammar.
func ParseChannelList(s string) ([]Channel, error) {
	var channels []Channel
	for _, record := range splitRecords(s, channelRecordSeparator) {
		if m := downstreamPattern.FindStringSubmatch(record); m != nil {
			ch, err := decodeDownstream(record, m)
			if err != nil {
				return nil, err
			}
			channels = append(channels, ch)
			continue
		}
		if m := upstreamPattern.FindStringSubmatch(record); m != nil {
			ch, err := decodeUpstream(record, m)
			if err != nil {
				return nil, err
			}
			channels = append(channels, ch)
			continue
		}
		return nil, &MalformedFieldError{Field: "channel list", Raw: record}
	}
	return channels, nil
}

func decodeDownstream(record string, m []string) (DownstreamChannel, error) {
	channelID, err := strconv.ParseUint(m[downstreamPattern.SubexpIndex("channel_id")], 10, 8)
	if err != nil {
		return DownstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	frequency, err := strconv.ParseUint(m[downstreamPattern.SubexpIndex("frequency")], 10, 32)
	if err != nil {
		return DownstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	power, err := strconv.ParseUint(m[downstreamPattern.SubexpIndex("power")], 10, 8)
	if err != nil {
		return DownstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	snr, err := strconv.ParseUint(m[downstreamPattern.SubexpIndex("snr")], 10, 8)
	if err != nil {
		return DownstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	corrected, err := strconv.ParseUint(m[downstreamPattern.SubexpIndex("corrected")], 10, 32)
	if err != nil {
		return DownstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	uncorrectables, err := strconv.ParseUint(m[downstreamPattern.SubexpIndex("uncorrectables")], 10, 32)
	if err != nil {
		return DownstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	return DownstreamChannel{
		ChannelID:      uint8(channelID),
		Modulation:     ParseModulation(m[downstreamPattern.SubexpIndex("modulation")]),
		LockStatus:     m[downstreamPattern.SubexpIndex("lock_status")] == "Locked",
		Frequency:      uint32(frequency),
		Power:          uint8(power),
		SNR:            uint8(snr),
		Corrected:      uint32(corrected),
		Uncorrectables: uint32(uncorrectables),
	}, nil
}

func decodeUpstream(record string, m []string) (UpstreamChannel, error) {
	channelID, err := strconv.ParseUint(m[upstreamPattern.SubexpIndex("channel_id")], 10, 8)
	if err != nil {
		return UpstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	width, err := strconv.ParseUint(m[upstreamPattern.SubexpIndex("width")], 10, 32)
	if err != nil {
		return UpstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	frequency, err := strconv.ParseUint(m[upstreamPattern.SubexpIndex("frequency")], 10, 32)
	if err != nil {
		return UpstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	power, err := strconv.ParseFloat(m[upstreamPattern.SubexpIndex("power")], 64)
	if err != nil {
		return UpstreamChannel{}, &MalformedFieldError{Field: "channel list", Raw: record, Err: err}
	}
	return UpstreamChannel{
		ChannelID:  uint8(channelID),
		Modulation: ParseModulation(m[upstreamPattern.SubexpIndex("modulation")]),
		LockStatus: m[upstreamPattern.SubexpIndex("lock_status")] == "Locked",
		Frequency:  uint32(frequency),
		Width:      uint32(width),
		Power:      power,
	}, nil
}

func splitRecords(s, separator string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, separator)
}
