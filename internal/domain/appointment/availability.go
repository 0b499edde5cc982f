package appointment

import "time"

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// BuildSlots marks every configured time as available unless it is booked.
// The order of slotTimes is preserved.
func BuildSlots(slotTimes, booked []string) []Slot {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	slots := make([]Slot, 0, len(slotTimes))
	for _, t := range slotTimes {
		_, isTaken := taken[t]
		slots = append(slots, Slot{Time: t, Available: !isTaken})
	}
	return slots
}

// BookingDates returns the next windowDays calendar dates starting the day
// after now, formatted YYYY-MM-DD in now's location.
func BookingDates(now time.Time, windowDays int) []string {
	if windowDays <= 0 {
		return []string{}
	}

	y, m, d := now.Date()
	dates := make([]string, 0, windowDays)
	for i := 1; i <= windowDays; i++ {
		dates = append(dates, time.Date(y, m, d+i, 0, 0, 0, 0, now.Location()).Format("2006-01-02"))
	}
	return dates
}

// InWindow reports whether date is one of the bookable dates for now.
func InWindow(date string, now time.Time, windowDays int) bool {
	for _, d := range BookingDates(now, windowDays) {
		if d == date {
			return true
		}
	}
	return false
}
