// Package time provides the injectable clock used to anchor report windows
package time

import "time"

// Clock returns the current instant
type Clock func() time.Time

// System is the wall clock in UTC
func System() Clock { return func() time.Time { return time.Now().UTC() } }

// Fixed always returns t, for tests and replayed requests
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// Now calls c, a nil Clock falls back to System
func (c Clock) Now() time.Time {
	if c == nil {
		return System()()
	}
	return c()
}
