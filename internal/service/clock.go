package service

import "time"

// Clock supplies the current time. Loan dates are taken from it so tests can
// fix "today".
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts an ordinary function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock. Calendar dates follow the process
// time zone, matching what a librarian at the desk would call today.
var SystemClock Clock = ClockFunc(time.Now)
