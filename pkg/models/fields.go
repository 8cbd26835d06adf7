package models

import (
	"encoding/json"
	"time"
)

// The modem buries its interesting data in delimited strings inside
// otherwise ordinary JSON. These wrapper types run the field codecs
// during unmarshaling so the response structs come out fully typed.

type Uptime time.Duration

func (u *Uptime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := ParseUptime(s)
	if err != nil {
		return err
	}
	*u = Uptime(d)
	return nil
}

func (u Uptime) Duration() time.Duration { return time.Duration(u) }

type SystemTime time.Time

func (t *SystemTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSystemTime(s)
	if err != nil {
		return err
	}
	*t = SystemTime(parsed)
	return nil
}

func (t SystemTime) Time() time.Time { return time.Time(t) }

type ChannelList []Channel

func (c *ChannelList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	channels, err := ParseChannelList(s)
	if err != nil {
		return err
	}
	*c = channels
	return nil
}

type LogList []LogEntry

func (l *LogList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	entries, err := ParseLogList(s)
	if err != nil {
		return err
	}
	*l = entries
	return nil
}
