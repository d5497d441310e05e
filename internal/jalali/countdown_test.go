package jalali

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestCountdownTimesUp(t *testing.T) {
	end := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	start := end.Add(-24 * time.Hour)

	for _, now := range []time.Time{
		end,
		end.Add(time.Minute),
		end.AddDate(5, 0, 0),
	} {
		label, fraction := Countdown(start, end, now)
		if label != TimesUp {
			t.Errorf("Expected %q at %v, got %q", TimesUp, now, label)
		}
		if fraction != 0 {
			t.Errorf("Expected fraction 0 at %v, got %f", now, fraction)
		}
	}
}

func TestCountdownHalfwayThroughDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	label, fraction := Countdown(start, end, now)

	if math.Abs(fraction-0.5) > 1e-9 {
		t.Errorf("Expected fraction 0.5, got %f", fraction)
	}
	if label != "12 ساعت" {
		t.Errorf("Expected %q, got %q", "12 ساعت", label)
	}
}

func TestCountdownCalendarAwareDecomposition(t *testing.T) {
	start := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 3, 5, 30, 0, 0, time.UTC)

	label, _ := Countdown(start, end, now)

	// January has 31 days, so exactly one month plus two days remain.
	if label != "1 ماه 2 روز 5 ساعت 30 دقیقه" {
		t.Errorf("Unexpected label %q", label)
	}
}

func TestCountdownYearUnit(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	end := time.Date(2025, 1, 1, 0, 30, 0, 0, time.UTC)

	label, _ := Countdown(start, end, now)

	if !strings.Contains(label, "1 سال") {
		t.Errorf("Expected a year component in %q", label)
	}
	if strings.Contains(label, "ماه") || strings.Contains(label, "روز") {
		t.Errorf("Expected no month or day component in %q", label)
	}
}

func TestCountdownDegenerateWindow(t *testing.T) {
	// Start after end: the fraction must not become a division artifact.
	start := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, fraction := Countdown(start, end, now)
	if fraction != 0 {
		t.Errorf("Expected fraction 0 for degenerate window, got %f", fraction)
	}

	// Zero-length window.
	_, fraction = Countdown(end, end, now)
	if fraction != 0 {
		t.Errorf("Expected fraction 0 for zero-length window, got %f", fraction)
	}
}

func TestCountdownFractionClamped(t *testing.T) {
	// Evaluated before the window opens: remaining exceeds the total span.
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	_, fraction := Countdown(start, end, now)
	if fraction != 1 {
		t.Errorf("Expected fraction clamped to 1, got %f", fraction)
	}
}

func TestCalculateTimeDifference(t *testing.T) {
	t.Run("past deadline", func(t *testing.T) {
		start := time.Date(1999, 1, 1, 0, 0, 0, 0, Tehran())
		label, fraction, err := CalculateTimeDifference(2000, 1, 1, "00:00", start)
		if err != nil {
			t.Fatalf("CalculateTimeDifference failed: %v", err)
		}
		if label != TimesUp || fraction != 0 {
			t.Errorf("Expected (%q, 0), got (%q, %f)", TimesUp, label, fraction)
		}
	})

	t.Run("invalid clock", func(t *testing.T) {
		if _, _, err := CalculateTimeDifference(2030, 1, 1, "noon", time.Now()); err == nil {
			t.Error("Expected error for malformed end time")
		}
	})
}
