package calendar

import (
	"testing"
	"time"
)

func TestDate_Format(t *testing.T) {
	tests := []struct {
		date      Date
		use24Hour bool
		want      string
	}{
		{at(2025, time.May, 23, 3, 46, 48, 447), true, "05/23/2025 3:46:48"},
		{at(2025, time.May, 23, 3, 46, 48, 447), false, "05/23/2025 3:46:48 AM"},
		{at(2024, time.December, 31, 23, 5, 9, 0), true, "12/31/2024 23:05:09"},
		{at(2024, time.December, 31, 23, 5, 9, 0), false, "12/31/2024 11:05:09 PM"},
		{at(2025, time.January, 1, 0, 0, 0, 0), true, "01/01/2025 0:00:00"},
		{at(2025, time.January, 1, 0, 0, 0, 0), false, "01/01/2025 12:00:00 AM"},
		{at(2025, time.October, 10, 12, 30, 0, 0), false, "10/10/2025 12:30:00 PM"},
		{at(2025, time.October, 10, 11, 59, 59, 999), false, "10/10/2025 11:59:59 AM"},
	}
	for _, tt := range tests {
		if got := tt.date.Format(tt.use24Hour); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.use24Hour, got, tt.want)
		}
	}
}

func TestDate_String(t *testing.T) {
	if got, want := FromMillis(fixture).String(), "05/23/2025 3:46:48"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
