package models

type Location struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Slot struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Label string `json:"label"`
}

// BookingReceipt is the one-shot hand-off from the booking screen to the
// confirmation screen. Slot holds the slot label as shown to the user.
type BookingReceipt struct {
	PlaceName string   `json:"placeName"`
	Slot      string   `json:"slot"`
	Location  Location `json:"location"`
}

// Booking is a booking record as the backend returns it.
type Booking struct {
	ID           string `json:"id,omitempty"`
	ResourceID   string `json:"resource_id"`
	ResourceName string `json:"resource_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
