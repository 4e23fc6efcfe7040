package streak

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Clock returns the current time. The engine never reads the system clock
// directly; callers inject one so "now"-relative rules stay deterministic
// in tests.
type Clock func() time.Time

const dayLayout = "2006-01-02"

var dayKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date represents a timestamp serialized as YYYY-MM-DD in YAML
type Date struct {
	time.Time
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(dayLayout), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := parseTimestamp(value.Value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// NewDate creates a new Date from a time.Time
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// parseTimestamp accepts the canonical YYYY-MM-DD format plus the RFC3339
// variants older records were stored in.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{dayLayout, time.RFC3339, time.RFC3339Nano} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD, RFC3339, or RFC3339Nano format", value)
}

// ParseDay parses a strict YYYY-MM-DD day key.
func ParseDay(key string) (time.Time, error) {
	if !dayKeyPattern.MatchString(key) {
		return time.Time{}, &InvalidDateFormatError{Value: key}
	}
	t, err := time.Parse(dayLayout, key)
	if err != nil {
		return time.Time{}, &InvalidDateFormatError{Value: key}
	}
	return t, nil
}

// IsDayKey reports whether key is a valid canonical day key.
func IsDayKey(key string) bool {
	_, err := ParseDay(key)
	return err == nil
}

// DayKey formats a time as its canonical day key.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// startOfDay truncates a time to its calendar day in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the number of calendar days from a to b.
// Same day yields 0, the next day 1, and so on.
func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}

// DaySet is a set of canonical day keys. It serializes as a sorted list.
type DaySet map[string]struct{}

// NewDaySet creates a DaySet from the given day keys.
func NewDaySet(days ...string) DaySet {
	s := make(DaySet, len(days))
	for _, day := range days {
		s[day] = struct{}{}
	}
	return s
}

// Add inserts a day key into the set.
func (s DaySet) Add(day string) {
	s[day] = struct{}{}
}

// Has reports whether the set contains the day key.
func (s DaySet) Has(day string) bool {
	_, ok := s[day]
	return ok
}

// Sorted returns the day keys in ascending order.
func (s DaySet) Sorted() []string {
	days := make([]string, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Clone returns a copy of the set.
func (s DaySet) Clone() DaySet {
	clone := make(DaySet, len(s))
	for day := range s {
		clone[day] = struct{}{}
	}
	return clone
}

// MarshalYAML implements the yaml.Marshaler interface
func (s DaySet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (s *DaySet) UnmarshalYAML(value *yaml.Node) error {
	var days []string
	if err := value.Decode(&days); err != nil {
		return fmt.Errorf("value.Decode() > %w", err)
	}
	*s = NewDaySet(days...)
	return nil
}
