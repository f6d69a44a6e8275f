package slots

import (
	"fmt"
	"rehab-service/internal/pkg/constvars"
	"sort"
	"strings"
	"time"
)

// Schedule is the clinic's fixed daily template of slot start times.
type Schedule struct {
	labels   []string
	offsets  map[string]time.Duration
	closed   map[time.Weekday]bool
	location *time.Location
}

func NewSchedule(labels, closedWeekdays []string, location *time.Location) (*Schedule, error) {
	if location == nil {
		location = time.Local
	}

	schedule := &Schedule{
		offsets:  make(map[string]time.Duration, len(labels)),
		closed:   make(map[time.Weekday]bool),
		location: location,
	}

	for _, label := range labels {
		canonical, offset, err := parseLabel(label)
		if err != nil {
			return nil, err
		}
		if _, exists := schedule.offsets[canonical]; exists {
			continue
		}
		schedule.offsets[canonical] = offset
		schedule.labels = append(schedule.labels, canonical)
	}
	sort.Slice(schedule.labels, func(i, j int) bool {
		return schedule.offsets[schedule.labels[i]] < schedule.offsets[schedule.labels[j]]
	})

	for _, name := range closedWeekdays {
		weekday, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("invalid closed weekday %q", name)
		}
		schedule.closed[weekday] = true
	}

	return schedule, nil
}

func (s *Schedule) Location() *time.Location {
	return s.location
}

// Labels returns the slot labels offered on day, empty when the clinic is
// closed that weekday.
func (s *Schedule) Labels(day time.Time) []string {
	if s.closed[day.In(s.location).Weekday()] {
		return []string{}
	}
	labels := make([]string, len(s.labels))
	copy(labels, s.labels)
	return labels
}

// Resolve maps a label in any accepted spelling ("9:00 AM", "09:00 am") to
// the canonical label offered on day.
func (s *Schedule) Resolve(day time.Time, label string) (string, bool) {
	if s.closed[day.In(s.location).Weekday()] {
		return "", false
	}
	canonical, _, err := parseLabel(label)
	if err != nil {
		return "", false
	}
	if _, ok := s.offsets[canonical]; !ok {
		return "", false
	}
	return canonical, true
}

// Start is the instant the labelled slot begins on day.
func (s *Schedule) Start(day time.Time, label string) time.Time {
	day = day.In(s.location)
	offset := s.offsets[label]
	return time.Date(day.Year(), day.Month(), day.Day(), int(offset/time.Hour), int(offset%time.Hour/time.Minute), 0, 0, s.location)
}

func parseLabel(label string) (string, time.Duration, error) {
	clock, err := time.Parse(constvars.SlotTimeParseLayout, strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return "", 0, fmt.Errorf(constvars.ErrDevScheduleInvalidSlot, label)
	}
	offset := time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute
	return clock.Format(constvars.SlotTimeLayout), offset, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if name == full || name == full[:3] {
			return day, true
		}
	}
	return 0, false
}
