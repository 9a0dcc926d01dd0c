package utils

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// CustomDate only keeps the calendar day, normalized to UTC midnight.
type CustomDate struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) CustomDate {
	return CustomDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) CustomDate {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (CustomDate, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return CustomDate{}, fmt.Errorf("invalid date format: %s", s)
	}
	return DateOf(t), nil
}

func (d CustomDate) Before(o CustomDate) bool { return d.Time.Before(o.Time) }
func (d CustomDate) After(o CustomDate) bool  { return d.Time.After(o.Time) }
func (d CustomDate) Equal(o CustomDate) bool  { return d.Time.Equal(o.Time) }

func (d CustomDate) AddDays(n int) CustomDate {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// At combines the day with a time of day in loc.
func (d CustomDate) At(t ClockTime, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

func (d *CustomDate) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == `null` || str == `""` {
		*d = CustomDate{}
		return nil
	}
	str = strings.Trim(str, `"`)
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CustomDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d CustomDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time.Format(dateLayout), nil
}

func (d *CustomDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = CustomDate{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("unsupported scan type for CustomDate: %T", value)
	}
}

func (d *CustomDate) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("cannot parse date: %w", err)
	}
	*d = parsed
	return nil
}

func (d CustomDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

const secondsPerDay = 24 * 60 * 60

// ClockTime is a time of day stored as seconds after midnight.
type ClockTime int

func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(((hour*60+minute)*60 + second) % secondsPerDay)
}

// ParseClockTime accepts "15:04" or "15:04:05".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time format: %s", s)
}

func (t ClockTime) Hour() int   { return int(t) / 3600 }
func (t ClockTime) Minute() int { return int(t) % 3600 / 60 }
func (t ClockTime) Second() int { return int(t) % 60 }

// AddMinutes wraps around midnight.
func (t ClockTime) AddMinutes(minutes int) ClockTime {
	v := (int(t) + minutes*60) % secondsPerDay
	if v < 0 {
		v += secondsPerDay
	}
	return ClockTime(v)
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	parsed, err := ParseClockTime(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ClockTime) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*t = NewClockTime(v.Hour(), v.Minute(), v.Second())
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case int64:
		// postgres time as microseconds after midnight
		*t = ClockTime(v / 1_000_000 % secondsPerDay)
		return nil
	default:
		return fmt.Errorf("unsupported scan type for ClockTime: %T", value)
	}
}

func (t *ClockTime) scanString(s string) error {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
