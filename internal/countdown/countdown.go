// Package countdown computes the time-until-home values shown on the
// dashboards: a raw remaining duration for the adult view and a discrete
// "sleeps" count for the kids view. Both are pure functions of their
// inputs; the home timezone is passed in, never taken from the machine.
package countdown

import "time"

// TimeUntil returns the time remaining until the return instant. ok is
// false once now has reached or passed it — already home, nothing to
// count down.
func TimeUntil(ret, now time.Time) (time.Duration, bool) {
	if !now.Before(ret) {
		return 0, false
	}
	return ret.Sub(now), true
}

// Sleeps counts the local midnights in the home timezone strictly after
// now and at or before the return instant. That is the number of times
// the kids go to bed before Dad is back: 0 when the return is later the
// same home-calendar day, 1 per midnight crossed after that.
//
// The count is calendar-based, not fixed-24-hour-based, so a daylight
// saving transition in the home zone shifts a midnight rather than
// dropping or doubling one.
func Sleeps(ret, now time.Time, home *time.Location) int {
	local := now.In(home)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, home)

	sleeps := 0
	for check := midnight.AddDate(0, 0, 1); !check.After(ret); check = check.AddDate(0, 0, 1) {
		sleeps++
	}
	return sleeps
}
