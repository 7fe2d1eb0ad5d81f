package requests

type FinalizeBooking struct {
	LocationID string `json:"location_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

// NearbyResources asks the backend resource search around a point. Without
// coordinates the location of the last pathway is used.
type NearbyResources struct {
	Lat     *float64
	Lng     *float64
	Filters string
}

// BookingConfirmedMessage is published when a client finalizes a booking.
type BookingConfirmedMessage struct {
	Event        string  `json:"event"`
	ClientID     string  `json:"client_id"`
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Label        string  `json:"label"`
	ConfirmedAt  string  `json:"confirmed_at"`
}
