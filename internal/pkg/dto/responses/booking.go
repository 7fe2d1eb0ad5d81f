package responses

import "carerouter-service/internal/app/models"

type Availability struct {
	Location models.Location `json:"location"`
	Slots    []models.Slot   `json:"slots"`
}

type BookingConfirmation struct {
	Receipt       models.BookingReceipt `json:"receipt"`
	DirectionsURL string                `json:"directions_url"`
}

type NearbyResources struct {
	Origin    *models.Coordinates `json:"origin,omitempty"`
	Resources []models.Resource   `json:"resources"`
}

type BookingHistory struct {
	Bookings []models.Booking `json:"bookings"`
}
