package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// WorkWeek is the set of weekdays on which employees are expected to attend.
// Absentees are only derived for working days.
type WorkWeek struct {
	days []time.Weekday
}

var weekdayNames = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// DefaultWorkWeek is Monday through Friday.
func DefaultWorkWeek() WorkWeek {
	return WorkWeek{days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}}
}

// ParseWorkWeek parses a comma separated list such as "MON,TUE,WED,THU,FRI".
func ParseWorkWeek(s string) (WorkWeek, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultWorkWeek(), nil
	}

	seen := make(map[time.Weekday]bool)
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToUpper(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return WorkWeek{}, fmt.Errorf("unknown weekday %q", part)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return WorkWeek{days: days}, nil
}

// IsWorkingDay reports whether t falls on a working weekday.
func (w WorkWeek) IsWorkingDay(t time.Time) bool {
	for _, d := range w.days {
		if t.Weekday() == d {
			return true
		}
	}
	return false
}

// Days returns local midnight of every working day in [from, to], both inclusive,
// in from's location. It returns nil when to is before from.
func (w WorkWeek) Days(from, to time.Time) ([]time.Time, error) {
	start := startOfDay(from)
	end := startOfDay(to.In(from.Location()))
	if end.Before(start) || len(w.days) == 0 {
		return nil, nil
	}

	byweekday := make([]rrule.Weekday, 0, len(w.days))
	for _, d := range w.days {
		byweekday = append(byweekday, rruleWeekdays[d])
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     end,
		Byweekday: byweekday,
	})
	if err != nil {
		return nil, fmt.Errorf("build working day rule: %w", err)
	}

	set := rrule.Set{}
	set.RRule(rule)

	instances := set.Between(start, end, true)
	days := make([]time.Time, 0, len(instances))
	for _, instance := range instances {
		days = append(days, startOfDay(instance.In(from.Location())))
	}
	return days, nil
}

// String renders the work week in the same form ParseWorkWeek accepts.
func (w WorkWeek) String() string {
	names := make([]string, 0, len(w.days))
	for _, d := range w.days {
		names = append(names, strings.ToUpper(d.String()[:3]))
	}
	return strings.Join(names, ",")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
