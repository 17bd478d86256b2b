package roadmap

import (
	"fmt"
	"time"
)

// Remaining is the time left until a target date
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Zero reports whether the target has been reached
func (r Remaining) Zero() bool {
	return r == Remaining{}
}

func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Countdown splits the time between now and target; it is zero once target has passed
func Countdown(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}

	secs := int64(d / time.Second)
	return Remaining{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}

// ParseTargetDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates
func ParseTargetDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid target date %q: %w", s, err)
	}
	return t, nil
}
