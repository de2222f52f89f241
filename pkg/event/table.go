package event

import "time"

const (
	// TableStatusTopic delivers authoritative status changes for tables.
	TableStatusTopic = "tables.status"

	EventTableStatusChanged = "table.status.changed"
	EventTablesGenerated    = "table.generated"
)

// TableStatusEvent captures a table transition for dashboards and feeds.
type TableStatusEvent struct {
	EventType      string    `json:"event_type"`
	RestaurantID   string    `json:"restaurant_id"`
	TableID        string    `json:"table_id"`
	TableName      string    `json:"table_name"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Source         string    `json:"source,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
