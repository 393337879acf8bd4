package domain

import "time"

// Contact is one way of reaching a customer. ContactType is free form
// ("email", "phone", ...); ContactValue is unique per customer. At most one
// contact per (customer, type) may be primary.
type Contact struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	ContactType  string    `json:"contact_type"`
	ContactValue string    `json:"contact_value"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Filled by list queries that join the owning customer.
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}
