// Simulation calendar — weeks roll into months, months into years.
package city

import "fmt"

// Date is the simulation calendar position.
type Date struct {
	Year       int `json:"year"`
	Month      int `json:"month"` // 1–12
	Week       int `json:"week"`  // 1–4
	TotalWeeks int `json:"total_weeks"`
}

// NewDate returns the calendar position at game start.
func NewDate() Date {
	return Date{Year: 1, Month: 1, Week: 1, TotalWeeks: 0}
}

// Advance moves the date forward one week. It reports whether the step
// closed a month and whether it also closed a year.
func (d *Date) Advance() (monthClosed, yearClosed bool) {
	d.TotalWeeks++
	d.Week++
	if d.Week <= 4 {
		return false, false
	}
	d.Week = 1
	d.Month++
	if d.Month <= 12 {
		return true, false
	}
	d.Month = 1
	d.Year++
	return true, true
}

// String renders the date for logs and the status endpoint.
func (d Date) String() string {
	return fmt.Sprintf("Y%d M%d W%d", d.Year, d.Month, d.Week)
}
