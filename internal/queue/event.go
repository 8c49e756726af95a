package queue

// Event kinds carried on the notification queue.
const (
	KindBookingOutcome = "booking_outcome"
	KindPromotion      = "promotion"
)

// NotificationEvent is published whenever a reservation changes in a
// way the customer should hear about: a booking outcome (confirmed,
// waitlisted or cancelled) or a waitlist promotion.  It carries
// enough information for downstream consumers to build the customer
// message without querying the primary database.
type NotificationEvent struct {
	Kind           string `json:"kind"`
	ReservationID  uint64 `json:"reservation_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	PartySize      uint32 `json:"party_size"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	Status         string `json:"status"`
	OccurredAt     string `json:"occurred_at"`
}
