package events

import "time"

type Type string

const (
	CompanyCreated  Type = "company_created"
	CompanyUpdated  Type = "company_updated"
	CompanyDeleted  Type = "company_deleted"
	EmployeeCreated Type = "employee_created"
	EmployeeUpdated Type = "employee_updated"
	EmployeeDeleted Type = "employee_deleted"
)

// Event is the lifecycle record published on every committed mutation.
type Event struct {
	EventType  Type      `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EntityID   string    `json:"entity_id"`
	CompanyID  string    `json:"company_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
