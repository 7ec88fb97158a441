package domain

import "time"

const (
	SectionCount    = 5
	SlotsPerSection = 5
	// TotalSlots is the fixed daily capacity of the resource.
	TotalSlots = SectionCount * SlotsPerSection
)

// IST is the zone the booking day boundary is defined in. It is a design
// constant, not derived from the server locale.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// DayOf returns the calendar date of t in IST, normalized to midnight UTC
// so it maps cleanly onto a DATE column.
func DayOf(t time.Time) time.Time {
	t = t.In(IST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Booking struct {
	ID          int64
	SectionID   int
	SlotNumber  int
	FullName    string
	Place       string
	Mobile      string
	BookingDate time.Time
	CreatedAt   time.Time
}

// ArchivedBooking is the append-only copy a booking becomes after the daily
// reset. It is never updated or deleted.
type ArchivedBooking struct {
	ID          int64
	SectionID   int
	SlotNumber  int
	FullName    string
	Place       string
	Mobile      string
	BookingDate time.Time
	ArchivedAt  time.Time
}

// SlotRef identifies one bookable unit of the daily grid.
type SlotRef struct {
	SectionID  int `json:"section_id"`
	SlotNumber int `json:"slot_number"`
}

// DaySlots is the booked-slot set for one calendar day, carrying the day
// the set was computed for.
type DaySlots struct {
	Date   time.Time
	Booked []SlotRef
}

type DayStats struct {
	Date      time.Time
	Sections  map[int]int
	Total     int
	Available int
}

type HealthStatus struct {
	OK      bool
	Latency time.Duration
}
