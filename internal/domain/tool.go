package domain

import "time"

type ToolStatus string

const (
	ToolStatusAvailable   ToolStatus = "AVAILABLE"
	ToolStatusRented      ToolStatus = "RENTED"
	ToolStatusUnavailable ToolStatus = "UNAVAILABLE"
)

type Tool struct {
	ID                    int64      `json:"id"`
	OwnerID               int64      `json:"owner_id"`
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	DailyRatePence        int64      `json:"daily_rate_pence"`
	ReplacementValuePence int64      `json:"replacement_value_pence"`
	Status                ToolStatus `json:"status"`
	CreatedOn             time.Time  `json:"created_on"`
	UpdatedOn             time.Time  `json:"updated_on"`
}
