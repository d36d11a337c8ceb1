package siddhanta

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Epoch and geometry constants of the model.
const (
	// MahayugaDays is the number of civil days in one mahāyuga.
	MahayugaDays = 1_577_917_828.0

	// JDKaliEpoch is the Julian Day of the Kali epoch
	// (midnight, 18 February 3102 BCE).
	JDKaliEpoch = 588_465.5

	// SineRadius is the trigonometric radius (trijyā) in arcminutes.
	SineRadius = 3438.0

	// ObliquityDeg is the fixed obliquity of the ecliptic used for
	// declination, in degrees.
	ObliquityDeg = 24.0
)

// CivilTime is a proleptic-Gregorian calendar instant, assumed UTC.
type CivilTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// InvalidDateError reports a calendar component outside its valid range.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %s %s out of range", e.Field, e.Value)
}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Validate checks every calendar component, including the day-of-month
// against the month length and leap-year rules.
func (c CivilTime) Validate() error {
	if c.Month < 1 || c.Month > 12 {
		return &InvalidDateError{Field: "month", Value: fmt.Sprint(c.Month)}
	}
	max := daysInMonth[c.Month]
	if c.Month == 2 && isLeap(c.Year) {
		max = 29
	}
	if c.Day < 1 || c.Day > max {
		return &InvalidDateError{Field: "day", Value: fmt.Sprint(c.Day)}
	}
	if c.Hour < 0 || c.Hour > 23 {
		return &InvalidDateError{Field: "hour", Value: fmt.Sprint(c.Hour)}
	}
	if c.Minute < 0 || c.Minute > 59 {
		return &InvalidDateError{Field: "minute", Value: fmt.Sprint(c.Minute)}
	}
	if c.Second < 0 || c.Second >= 60 {
		return &InvalidDateError{Field: "second", Value: fmt.Sprint(c.Second)}
	}
	return nil
}

// ParseCivil parses an ISO-8601 date-time of the form 2006-01-02T15:04:05
// and validates its components.
func ParseCivil(s string) (CivilTime, error) {
	var c CivilTime
	n, err := fmt.Sscanf(s, "%d-%d-%dT%d:%d:%f",
		&c.Year, &c.Month, &c.Day, &c.Hour, &c.Minute, &c.Second)
	if err != nil || n != 6 {
		return CivilTime{}, &InvalidDateError{Field: "datetime", Value: s}
	}
	if err := c.Validate(); err != nil {
		return CivilTime{}, err
	}
	return c, nil
}

// FromTime converts a time.Time (in UTC) to a CivilTime.
func FromTime(t time.Time) CivilTime {
	t = t.UTC()
	return CivilTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// JulianDay returns the Julian Day of the instant, with the time of day in
// the fractional part.
func (c CivilTime) JulianDay() float64 {
	day := float64(c.Day) +
		(float64(c.Hour)+float64(c.Minute)/60.0+c.Second/3600.0)/24.0
	return julian.CalendarGregorianToJD(c.Year, c.Month, day)
}

// DayCount returns the signed day count since the Kali epoch (ahargaṇa).
// The fractional part encodes the time of day.
func (c CivilTime) DayCount() float64 {
	return c.JulianDay() - JDKaliEpoch
}
