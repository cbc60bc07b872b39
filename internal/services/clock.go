package services

import "time"

// Clock abstracts wall-clock reads so alert and report logic can be driven by
// synthetic timestamps in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
