package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is an offset from the start of the simulated day.
// It carries no calendar date; 08:00:00 is TimeOfDay(8 * time.Hour).
type TimeOfDay time.Duration

// At builds a TimeOfDay from clock components.
func At(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second)
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS on a 24h clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("parse time %q: want HH:MM or HH:MM:SS: %w", s, ErrInvalidTime)
	}

	limits := []int{23, 59, 59}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("parse time %q: field %d out of range: %w", s, i+1, ErrInvalidTime)
		}
		vals[i] = n
	}

	return At(vals[0], vals[1], vals[2]), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Duration() time.Duration { return time.Duration(t) }

func (t TimeOfDay) Add(d time.Duration) TimeOfDay { return t + TimeOfDay(d) }

func (t TimeOfDay) Before(u TimeOfDay) bool { return t < u }

func (t TimeOfDay) After(u TimeOfDay) bool { return t > u }

// Max returns the later of t and u.
func (t TimeOfDay) Max(u TimeOfDay) TimeOfDay {
	if u.After(t) {
		return u
	}
	return t
}

// String renders HH:MM:SS, rounding to the nearest second.
// Times past midnight keep counting hours (e.g. 25:10:00).
func (t TimeOfDay) String() string {
	d := time.Duration(t).Round(time.Second)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// Ptr returns a pointer to a copy of t, for optional timestamp fields.
func (t TimeOfDay) Ptr() *TimeOfDay { return &t }
