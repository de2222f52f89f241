package checkin

import (
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/pkg/enums/checkinstatus"
)

const NotificationTypeCheckIn = "checkIn"

type CheckIn struct {
	ID             uuid.UUID  `json:"id" bson:"_id"`
	RestaurantID   uuid.UUID  `json:"restaurantId" bson:"restaurant_id"`
	CustomerID     string     `json:"customerId" bson:"customer_id"`
	CustomerName   string     `json:"customerName" bson:"customer_name"`
	NumberOfPeople int        `json:"numberOfPeople" bson:"number_of_people"`
	Status         string     `json:"status" bson:"status"`
	TableNumber    string     `json:"tableNumber,omitempty" bson:"table_number,omitempty"`
	EmployeeName   string     `json:"employeeName,omitempty" bson:"employee_name,omitempty"`
	EmployeeID     string     `json:"employeeId,omitempty" bson:"employee_id,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updated_at"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty" bson:"responded_at,omitempty"`
}

func NewCheckIn() *CheckIn {
	return &CheckIn{ID: uuid.New(), Status: checkinstatus.Requested}
}

func (c *CheckIn) GetID() uuid.UUID {
	return c.ID
}

func (c *CheckIn) ResourceType() string {
	return "check_in"
}

func (c *CheckIn) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}

func (c *CheckIn) BeforeCreate() {
	c.EnsureID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
}

func (c *CheckIn) BeforeUpdate() {
	c.UpdatedAt = time.Now()
}

// Answerable reports whether the restaurant can still accept or decline.
func (c *CheckIn) Answerable() bool {
	return c.Status == checkinstatus.Requested || c.Status == checkinstatus.Pending
}

func (c *CheckIn) Accept(tableNumber, employeeName, employeeID string, at time.Time) {
	c.Status = checkinstatus.Accepted
	c.TableNumber = tableNumber
	c.EmployeeName = employeeName
	c.EmployeeID = employeeID
	c.RespondedAt = &at
	c.UpdatedAt = at
}

func (c *CheckIn) Decline(employeeName, employeeID string, at time.Time) {
	c.Status = checkinstatus.Declined
	c.EmployeeName = employeeName
	c.EmployeeID = employeeID
	c.RespondedAt = &at
	c.UpdatedAt = at
}

// Notification tells restaurant staff about a pending check-in.
type Notification struct {
	ID             uuid.UUID `json:"id" bson:"_id"`
	RestaurantID   uuid.UUID `json:"restaurantId" bson:"restaurant_id"`
	CustomerID     string    `json:"customerId" bson:"customer_id"`
	CheckInID      uuid.UUID `json:"checkInId" bson:"check_in_id"`
	Type           string    `json:"type" bson:"type"`
	Status         string    `json:"status" bson:"status"`
	IsRead         bool      `json:"isRead" bson:"is_read"`
	CustomerName   string    `json:"customerName,omitempty" bson:"customer_name,omitempty"`
	NumberOfPeople int       `json:"numberOfPeople,omitempty" bson:"number_of_people,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}

// NewNotification builds the pending notification paired with c.
func NewNotification(c *CheckIn) *Notification {
	return &Notification{
		ID:             uuid.New(),
		RestaurantID:   c.RestaurantID,
		CustomerID:     c.CustomerID,
		CheckInID:      c.ID,
		Type:           NotificationTypeCheckIn,
		Status:         checkinstatus.Pending,
		CustomerName:   c.CustomerName,
		NumberOfPeople: c.NumberOfPeople,
		CreatedAt:      c.CreatedAt,
	}
}
