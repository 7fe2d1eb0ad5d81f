package bookings

import (
	"carerouter-service/internal/app/models"
	"fmt"
	"strconv"
	"time"
)

const (
	availabilityDays = 7
	maxSlots         = 14
)

var slotTimes = []struct {
	clock string
	label string
}{
	{"09:00", "9:00 AM"},
	{"10:30", "10:30 AM"},
	{"14:00", "2:00 PM"},
	{"15:30", "3:30 PM"},
	{"17:00", "5:00 PM"},
}

// DefaultLocations is the provider directory shown on the map screen.
func DefaultLocations() []models.Location {
	return []models.Location{
		{ID: "1", Name: "Sliding Scale Counseling Center", Lat: 43.6532, Lng: -79.3832},
		{ID: "2", Name: "Community Mental Health Clinic", Lat: 43.6510, Lng: -79.3470},
		{ID: "3", Name: "Therapist - Dr. Sarah Johnson", Lat: 43.6565, Lng: -79.3590},
	}
}

// NextAvailability lists mock slots starting today. Every location gets the
// same schedule.
func NextAvailability(now time.Time) []models.Slot {
	slots := make([]models.Slot, 0, maxSlots)
	for day := 0; day < availabilityDays; day++ {
		date := now.AddDate(0, 0, day)
		dayLabel := dayLabel(day, date)
		for _, slot := range slotTimes {
			if len(slots) == maxSlots {
				return slots
			}
			slots = append(slots, models.Slot{
				Date:  date.Format("2006-01-02"),
				Time:  slot.clock,
				Label: fmt.Sprintf("%s, %s", dayLabel, slot.label),
			})
		}
	}
	return slots
}

func dayLabel(offset int, date time.Time) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return date.Format("Mon, Jan 2")
	}
}

func findSlot(slots []models.Slot, date, clock string) (models.Slot, bool) {
	for _, slot := range slots {
		if slot.Date == date && slot.Time == clock {
			return slot, true
		}
	}
	return models.Slot{}, false
}

// DirectionsURL opens Google Maps directions to the given point.
func DirectionsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%s,%s", formatCoordinate(lat), formatCoordinate(lng))
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
