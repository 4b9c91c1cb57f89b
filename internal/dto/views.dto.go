package dto

import "time"

type PendingActionDTO struct {
	ID          uint      `json:"id"`
	ClientID    uint      `json:"client_id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type ActionStatsDTO struct {
	Total int64 `json:"total"`

	Pending    int64 `json:"pending"`
	Yes        int64 `json:"yes"`
	No         int64 `json:"no"`
	NoResponse int64 `json:"no_response"`
	Scheduled  int64 `json:"scheduled"`
	Purchased  int64 `json:"purchased"`

	Messages int64 `json:"messages"`
	Calls    int64 `json:"calls"`

	// Purchased over total, percentage with two decimals. Zero when there
	// are no actions.
	ConversionRate float64 `json:"conversion_rate"`
}

type ClientNeedingActionDTO struct {
	ClientID       uint       `json:"client_id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	NextAction     *time.Time `json:"next_action,omitempty"`
	DueToday       bool       `json:"due_today"`
	HasPendingCall bool       `json:"has_pending_call"`
}
