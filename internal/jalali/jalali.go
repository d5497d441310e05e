// Package jalali converts between the Jalali (solar hijri) and Gregorian
// calendars and computes deadline countdowns. All functions are pure; the
// session layer never reaches in here and vice versa.
package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Date is a Jalali calendar date. Month and day are 1-based.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date in the backend's unpadded "Y-M-D" form.
func (d Date) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Year, d.Month, d.Day)
}

// Datetime layouts accepted on the wire. Seconds and the UTC offset are both
// optional; a missing offset means UTC.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseDatetime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range datetimeLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q: %w", raw, lastErr)
}

// SplitDateTime splits a wire datetime into its date part and the "HH:MM"
// time of the same instant in Tehran. The date part is returned as sent,
// not shifted into the Tehran day.
func SplitDateTime(raw string) (datePart, localTime string, err error) {
	t, err := parseDatetime(raw)
	if err != nil {
		return "", "", err
	}

	datePart, _, _ = strings.Cut(raw, "T")
	localTime = t.In(ptime.Iran()).Format("15:04")
	return strings.TrimSpace(datePart), localTime, nil
}

// SplitDate splits a hyphen-delimited "Y-M-D" string into integers.
func SplitDate(datePart string) (year, month, day int, err error) {
	segments := strings.Split(datePart, "-")
	if len(segments) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q: want 3 segments, got %d", datePart, len(segments))
	}

	parts := make([]int, 3)
	for i, s := range segments {
		parts[i], err = strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid date %q: %w", datePart, err)
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// ToGregorian converts a Jalali "Y-M-D" string to the Gregorian "Y-M-DTHH:MM"
// form the backend stores. Months are 1-based on both sides and the output is
// unpadded, matching the wire format.
func ToGregorian(jalaliDate, timeStr string) (string, error) {
	year, month, day, err := SplitDate(jalaliDate)
	if err != nil {
		return "", err
	}

	g := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, ptime.Iran()).Time()
	return fmt.Sprintf("%d-%d-%dT%s", g.Year(), int(g.Month()), g.Day(), timeStr), nil
}

// FromGregorian converts a Gregorian "Y-M-D" string to a Jalali date.
func FromGregorian(gregorianDate string) (Date, error) {
	year, month, day, err := SplitDate(gregorianDate)
	if err != nil {
		return Date{}, err
	}

	p := ptime.New(time.Date(year, time.Month(month), day, 0, 0, 0, 0, ptime.Iran()))
	return Date{Year: p.Year(), Month: int(p.Month()), Day: p.Day()}, nil
}

// Tehran returns the timezone all wall-clock times normalize to.
func Tehran() *time.Location {
	return ptime.Iran()
}

// MonthName returns the Persian name of a Jalali month.
func MonthName(month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month %d out of range 1..12", month)
	}
	return ptime.Month(month).String(), nil
}
