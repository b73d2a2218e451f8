package domain

import "time"

// DayFormat is the stable, locale-independent calendar-day format used for
// shop rotation and daily-claim bookkeeping.
const DayFormat = "2006-01-02"

// Clock abstracts "today" so day-boundary logic is testable without waiting
// for real days to pass.
type Clock interface {
	Today() string
}

// UTCClock reads the wall clock in UTC.
type UTCClock struct{}

func (UTCClock) Today() string {
	return time.Now().UTC().Format(DayFormat)
}

// FixedClock always reports the same day. Test helper.
type FixedClock string

func (c FixedClock) Today() string { return string(c) }
