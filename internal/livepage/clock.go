package livepage

import (
	"strconv"
	"time"
)

// Clock abstracts time so tests can drive the updater and the watcher
// deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealClock uses the system clock in the local time zone.
type RealClock struct{}

func (RealClock) Now() time.Time                         { return time.Now() }
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// LeadingZero formats n as a decimal, padded to two digits when n < 10.
func LeadingZero(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatClock renders t as HH:MM:SS.
func FormatClock(t time.Time) string {
	return LeadingZero(t.Hour()) + ":" + LeadingZero(t.Minute()) + ":" + LeadingZero(t.Second())
}
