package entity

import "time"

// Status tracks where a lead sits in the sales pipeline.
type Status string

// Pipeline statuses a lead can hold.
const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusQualified Status = "Qualified"
	StatusWon       Status = "Won"
	StatusLost      Status = "Lost"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusWon, StatusLost}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusWon, StatusLost:
		return true
	}
	return false
}

// Lead represents a contact captured from the public form.
type Lead struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Source      *string   `json:"source,omitempty"`
	Message     *string   `json:"message,omitempty"`
	Status      Status    `json:"status"`
	UTMSource   *string   `json:"utm_source,omitempty"`
	UTMMedium   *string   `json:"utm_medium,omitempty"`
	UTMCampaign *string   `json:"utm_campaign,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
