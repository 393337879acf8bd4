package domain

import "time"

// Lead is a sales opportunity attached to a customer. Status and source are
// free-form strings; Value is non-negative and defaults to zero.
type Lead struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	LeadSource  string    `json:"lead_source"`
	Status      string    `json:"status"`
	Value       float64   `json:"value"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Filled by queries that join the owning customer.
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
}
