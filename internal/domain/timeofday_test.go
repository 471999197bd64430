package domain

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
		err  bool
	}{
		{"08:00:00", At(8, 0, 0), false},
		{"10:20", At(10, 20, 0), false},
		{" 13:05:09 ", At(13, 5, 9), false},
		{"24:00:00", 0, true},
		{"8", 0, true},
		{"aa:bb:cc", 0, true},
		{"10:60:00", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ParseTimeOfDay(%q) err = %v, want ErrInvalidTime", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := At(8, 10, 0).String(); s != "08:10:00" {
		t.Fatalf("String() = %q", s)
	}
	if s := At(25, 1, 2).String(); s != "25:01:02" {
		t.Fatalf("String() past midnight = %q", s)
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	early := MustParseTimeOfDay("09:05")
	late := MustParseTimeOfDay("10:20:00")

	if !early.Before(late) || early.After(late) {
		t.Errorf("09:05 should be before 10:20")
	}
	if !late.After(early) || late.Before(early) {
		t.Errorf("10:20 should be after 09:05")
	}
	if early.Before(early) || early.After(early) {
		t.Errorf("a time is neither before nor after itself")
	}
	if got := early.Max(late); got != late {
		t.Errorf("Max = %v, want %v", got, late)
	}
	if got := late.Max(early); got != late {
		t.Errorf("Max = %v, want %v", got, late)
	}
}

func TestMustParseTimeOfDayPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for 24:00")
		}
	}()
	MustParseTimeOfDay("24:00")
}
