package util

import (
	"fmt"
	"strings"
	"time"
)

const ReportLayout = "2006-01-02 15:04:05 MST"

// Clock stamps reports in a fixed location.
type Clock struct {
	location *time.Location
	now      func() time.Time
}

// NewClock loads the named IANA zone. An empty name means UTC.
func NewClock(zone string) (*Clock, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return &Clock{location: time.UTC, now: time.Now}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return &Clock{location: loc, now: time.Now}, nil
}

// FixedClock always reports t. Tests use it to get stable report footers.
func FixedClock(t time.Time, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{location: loc, now: func() time.Time { return t }}
}

func (c *Clock) Location() *time.Location {
	return c.location
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.location)
}

// Format renders t in the clock's location using ReportLayout.
func (c *Clock) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(c.location).Format(ReportLayout)
}

// Stamp is Format(Now()).
func (c *Clock) Stamp() string {
	return c.Format(c.now())
}
