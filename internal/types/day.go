// Package types implements special types for the yuk-nabung backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Day is a calendar date, truncated to midnight UTC.
//
// Daily records are keyed by Day, weekly records by the Day of their
// Monday. Weeks run Monday to Sunday: a Sunday belongs to the week
// that started on the previous Monday.
type Day time.Time

// NewDay returns a new Day.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the Day a time instant falls on, in UTC.
func DayOf(t time.Time) Day {
	year, month, day := t.In(time.UTC).Date()
	return NewDay(year, month, day)
}

// ParseDay parses a string in RFC3339 full-date format ("2006-01-02").
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}

	return DayOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Day) String() string {
	return time.Time(d).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d)), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both full RFC3339 timestamps and plain dates are accepted,
// everything below the day is discarded.
func (d *Day) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
	}

	*d = DayOf(t)
	return nil
}

// Scan reads the value from the database.
func (d *Day) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DayOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Day) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Day) GormDataType() string {
	return "date"
}

// IsZero reports if the day is the zero value.
func (d Day) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays adds a number of days, which may be negative.
func (d Day) AddDays(days int) Day {
	return Day(time.Time(d).AddDate(0, 0, days))
}

// Before reports whether the day d is before e.
func (d Day) Before(e Day) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the day d is after e.
func (d Day) After(e Day) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e are the same date.
func (d Day) Equal(e Day) bool {
	return time.Time(d).Equal(time.Time(e))
}

// Time returns the day as a time.Time at midnight UTC.
func (d Day) Time() time.Time {
	return time.Time(d)
}

// Year returns the calendar year of the day.
func (d Day) Year() int {
	return time.Time(d).Year()
}

// Month returns the calendar month of the day.
func (d Day) Month() time.Month {
	return time.Time(d).Month()
}

// WeekStart returns the Monday of the week the day falls in.
// For a Sunday this is the previous Monday, not the next one.
func (d Day) WeekStart() Day {
	weekday := int(time.Time(d).Weekday())
	if weekday == 0 {
		weekday = 7
	}

	return d.AddDays(1 - weekday)
}

// WeekEnd returns the Sunday of the week the day falls in.
func (d Day) WeekEnd() Day {
	return d.WeekStart().AddDays(6)
}

// EndOfWeekTime returns the last instant of the week the day falls in,
// Sunday at 23:59:59.999.
func (d Day) EndOfWeekTime() time.Time {
	return time.Time(d.WeekEnd()).Add(24*time.Hour - time.Millisecond)
}

// MonthStart returns the first day of the month the day falls in.
func (d Day) MonthStart() Day {
	return NewDay(d.Year(), d.Month(), 1)
}

// NextMonthStart returns the first day of the following month.
func (d Day) NextMonthStart() Day {
	return Day(time.Time(d.MonthStart()).AddDate(0, 1, 0))
}

// SameMonth reports whether two days fall in the same calendar month.
func (d Day) SameMonth(e Day) bool {
	return d.Year() == e.Year() && d.Month() == e.Month()
}
