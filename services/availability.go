package services

import (
	"fmt"
	"log"
	"time"
)

// AvailabilityGate answers whether the cafe currently accepts orders from
// customers. Hours are a half-open interval [OpenHour, CloseHour) in the
// configured timezone. Any evaluation fault fails open: availability errors
// must never block service.
type AvailabilityGate struct {
	OpenHour  int
	CloseHour int
	Timezone  string

	Now func() time.Time // overridable in tests; nil means time.Now
}

func NewAvailabilityGate(openHour, closeHour int, timezone string) *AvailabilityGate {
	return &AvailabilityGate{OpenHour: openHour, CloseHour: closeHour, Timezone: timezone}
}

func (g *AvailabilityGate) IsOpen() bool {
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}

	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		log.Printf("availability: unknown timezone %q, treating cafe as open: %v", g.Timezone, err)
		return true
	}

	h := now.In(loc).Hour()
	return g.OpenHour <= h && h < g.CloseHour
}

func (g *AvailabilityGate) ClosedMessage() string {
	return fmt.Sprintf("🌙 The cafe is closed.\nWe are open daily from %d:00 to %d:00.", g.OpenHour, g.CloseHour)
}
