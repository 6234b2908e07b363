package util_test

import (
	"testing"
	"time"

	util "github.com/saulo-duarte/yt-study-api/internal/utils"
)

func TestNewClock(t *testing.T) {
	t.Run("DefaultsToUTC", func(t *testing.T) {
		c, err := util.NewClock("")
		if err != nil {
			t.Fatalf("NewClock failed: %v", err)
		}
		if c.Location() != time.UTC {
			t.Errorf("expected UTC, got %v", c.Location())
		}
	})

	t.Run("UnknownZone", func(t *testing.T) {
		if _, err := util.NewClock("Mars/Olympus_Mons"); err == nil {
			t.Error("expected error for unknown zone")
		}
	})
}

func TestClockFormat(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

	c := util.FixedClock(at, time.FixedZone("BRT", -3*60*60))
	if got := c.Stamp(); got != "2024-03-01 12:04:05 BRT" {
		t.Errorf("Stamp = %q", got)
	}
	if got := c.Format(time.Time{}); got != "" {
		t.Errorf("zero time formatted as %q", got)
	}
	if !c.Now().Equal(at) {
		t.Errorf("Now = %v, want %v", c.Now(), at)
	}
}
