package calendar

import "fmt"

// Format returns d as MM/DD/YYYY H:MM:SS. The hour is not padded. Without
// use24Hour the hour runs from 1 to 12 and AM or PM is appended.
func (d Date) Format(use24Hour bool) string {
	if use24Hour {
		return fmt.Sprintf("%02d/%02d/%d %d:%02d:%02d", int(d.Month), d.Day, d.Year, d.Hour, d.Minute, d.Second)
	}
	hour := d.Hour % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if d.Hour >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%02d/%02d/%d %d:%02d:%02d %s", int(d.Month), d.Day, d.Year, hour, d.Minute, d.Second, meridiem)
}

// String returns the 24-hour Format of d.
func (d Date) String() string {
	return d.Format(true)
}
