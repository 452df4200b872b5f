// Package clock supplies "today" to the date-bucket and dashboard logic.
//
// Due-date comparisons work on calendar days in the local time zone, so
// everything downstream asks a Clock for a models.Date rather than reading
// time.Now directly. Tests and the --today flag pin the day with Fixed.
package clock

import (
	"time"

	"github.com/tgienger/taskdash/internal/models"
)

// Clock reports the current calendar day.
type Clock interface {
	Today() models.Date
}

// System reads the wall clock in the local time zone.
type System struct{}

func (System) Today() models.Date {
	return models.DateOf(time.Now())
}

// Fixed always reports the same day.
type Fixed models.Date

func (f Fixed) Today() models.Date {
	return models.Date(f)
}

// Func adapts a plain function to Clock.
type Func func() models.Date

func (f Func) Today() models.Date {
	return f()
}
