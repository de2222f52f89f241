package event

import "time"

const (
	CheckInRequestedTopic = "checkin.requested"
	CheckInRespondedTopic = "checkin.responded"
	CheckInCancelledTopic = "checkin.cancelled"
)

// CheckInEvent notifies the restaurant (requested, cancelled) or the
// customer (responded) about a seat request.
type CheckInEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	CheckInID      string    `json:"check_in_id"`
	NotificationID string    `json:"notification_id,omitempty"`
	RestaurantID   string    `json:"restaurant_id"`
	CustomerID     string    `json:"customer_id"`
	CustomerName   string    `json:"customer_name,omitempty"`
	NumberOfPeople int       `json:"number_of_people,omitempty"`
	Status         string    `json:"status"`
	TableNumber    string    `json:"table_number,omitempty"`
	EmployeeName   string    `json:"employee_name,omitempty"`
}
