package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// TimesUp is the label returned once a deadline has passed.
const TimesUp = "Time's up"

// Countdown reports how much of the window from start to end remains at now:
// a human-readable label and the remaining fraction of the total span.
//
// The label decomposes the remainder calendar-aware, largest unit first, so
// "1 ماه" spans however long the month being crossed actually is. Zero units
// are omitted. When now is at or past end the label is TimesUp and the
// fraction 0. A degenerate window (start at or after end) also yields 0
// rather than a division artifact; the fraction is always within [0, 1].
func Countdown(start, end, now time.Time) (string, float64) {
	if !now.Before(end) {
		return TimesUp, 0
	}

	total := end.Sub(start).Seconds()
	remaining := end.Sub(now).Seconds()

	var fraction float64
	if total > 0 {
		fraction = remaining / total
		if fraction > 1 {
			fraction = 1
		} else if fraction < 0 {
			fraction = 0
		}
	}

	cursor := now
	years, cursor := advance(cursor, end, func(t time.Time) time.Time { return t.AddDate(1, 0, 0) })
	months, cursor := advance(cursor, end, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
	days, cursor := advance(cursor, end, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) })
	hours, cursor := advance(cursor, end, func(t time.Time) time.Time { return t.Add(time.Hour) })
	minutes, _ := advance(cursor, end, func(t time.Time) time.Time { return t.Add(time.Minute) })

	var b strings.Builder
	appendUnit(&b, years, "سال")
	appendUnit(&b, months, "ماه")
	appendUnit(&b, days, "روز")
	appendUnit(&b, hours, "ساعت")
	appendUnit(&b, minutes, "دقیقه")

	return strings.TrimSpace(b.String()), fraction
}

// advance steps cursor toward end one unit at a time and returns how many
// whole units fit.
func advance(cursor, end time.Time, step func(time.Time) time.Time) (int, time.Time) {
	n := 0
	for {
		next := step(cursor)
		if next.After(end) {
			return n, cursor
		}
		cursor = next
		n++
	}
}

func appendUnit(b *strings.Builder, value int, unit string) {
	if value > 0 {
		fmt.Fprintf(b, "%d %s ", value, unit)
	}
}

// CalculateTimeDifference evaluates the countdown for a deadline given as a
// Gregorian end date plus an "HH:MM" Tehran wall-clock time, against the
// current wall clock.
func CalculateTimeDifference(endYear, endMonth, endDay int, endTime string, start time.Time) (string, float64, error) {
	hour, minute, err := parseClock(endTime)
	if err != nil {
		return "", 0, err
	}

	end := time.Date(endYear, time.Month(endMonth), endDay, hour, minute, 0, 0, ptime.Iran())
	label, fraction := Countdown(start, end, time.Now().In(ptime.Iran()))
	return label, fraction, nil
}

func parseClock(clock string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}

	hour, err = strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return hour, minute, nil
}
