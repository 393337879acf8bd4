package domain

import "time"

// Stage is one entry in a lead's pipeline history. Ordering is by creation
// time; there is no explicit sequence column.
type Stage struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"lead_id"`
	StageName string    `json:"stage_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries that join the lead and its customer.
	LeadSource    *string  `json:"lead_source,omitempty"`
	LeadStatus    *string  `json:"lead_status,omitempty"`
	LeadValue     *float64 `json:"lead_value,omitempty"`
	CustomerName  *string  `json:"customer_name,omitempty"`
	CustomerEmail *string  `json:"customer_email,omitempty"`
}
