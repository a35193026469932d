package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Weekdays is the display and storage order of a schedule.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type DaySchedule struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Schedule maps a lower-case weekday name to that day's hours.
type Schedule map[string]DaySchedule

func DefaultSchedule() Schedule {
	s := make(Schedule, len(Weekdays))
	for _, day := range Weekdays {
		s[day] = DaySchedule{Enabled: day != "saturday" && day != "sunday", Start: "09:00", End: "17:00"}
	}
	return s
}

func ParseSchedule(raw datatypes.JSON) (Schedule, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return s, nil
}

func (s Schedule) JSON() datatypes.JSON {
	b, _ := json.Marshal(s)
	return datatypes.JSON(b)
}

// Set updates one day. start and end must be HH:MM with end after start.
func (s Schedule) Set(day string, enabled bool, start, end string) error {
	day = strings.ToLower(strings.TrimSpace(day))
	if !IsWeekday(day) {
		return fmt.Errorf("unknown day %q", day)
	}
	current := s[day]
	if start == "" {
		start = current.Start
	}
	if end == "" {
		end = current.End
	}
	if start == "" {
		start = "09:00"
	}
	if end == "" {
		end = "17:00"
	}
	st, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("invalid start time %q", start)
	}
	et, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("invalid end time %q", end)
	}
	if enabled && !et.After(st) {
		return fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	s[day] = DaySchedule{Enabled: enabled, Start: start, End: end}
	return nil
}

// WeeklyHours sums scheduled hours over enabled days.
func (s Schedule) WeeklyHours() float64 {
	var total float64
	for _, day := range Weekdays {
		d, ok := s[day]
		if !ok || !d.Enabled {
			continue
		}
		st, err1 := time.Parse("15:04", d.Start)
		et, err2 := time.Parse("15:04", d.End)
		if err1 != nil || err2 != nil || !et.After(st) {
			continue
		}
		total += et.Sub(st).Hours()
	}
	return total
}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
