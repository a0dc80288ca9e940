package model

import "time"

// Customer is a person who can claim seats.  DocumentNumber is the
// national ID and is unique across customers.  PhoneNumber and Email
// are optional contact channels used by the cancellation notifier.
type Customer struct {
	ID             uint64      `json:"id"`                     // customers.id
	DocumentNumber string      `json:"document_number"`        // customers.document_number
	Name           string      `json:"name"`                   // customers.name
	Lastname       string      `json:"lastname"`               // customers.lastname
	Age            uint32      `json:"age"`                    // customers.age
	PhoneNumber    *string     `json:"phone_number,omitempty"` // customers.phone_number (nullable)
	Email          *string     `json:"email,omitempty"`        // customers.email (nullable)
	Status         RecordState `json:"status"`                 // customers.status
	CreatedAt      time.Time   `json:"created_at"`             // customers.created_at
	UpdatedAt      time.Time   `json:"updated_at"`             // customers.updated_at
}

// FullName joins name and lastname for display and notifications.
func (c *Customer) FullName() string { return c.Name + " " + c.Lastname }

// Contact returns the preferred contact channel: email when present,
// otherwise phone number, otherwise an empty string.
func (c *Customer) Contact() string {
	if c.Email != nil && *c.Email != "" {
		return *c.Email
	}
	if c.PhoneNumber != nil && *c.PhoneNumber != "" {
		return *c.PhoneNumber
	}
	return ""
}
