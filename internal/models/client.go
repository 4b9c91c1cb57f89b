package models

import "time"

// Cliente captado pelo webhook de entrada, sem login
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// CPF, unique when present (NULLs don't collide)
	TaxID *string `gorm:"size:14;uniqueIndex" json:"tax_id,omitempty"`

	FirstPurchaseDate *time.Time `gorm:"type:date" json:"first_purchase_date,omitempty"`
	Procedure         string     `gorm:"size:100" json:"procedure"`
	AmountPaid        *float64   `gorm:"check:amount_paid IS NULL OR amount_paid >= 0" json:"amount_paid,omitempty"`

	// NextAction drives the daily cycle; LastAction is stamped when a
	// non-pending result is recorded on one of the client's actions.
	// NextAction never points before the client existed.
	NextAction *time.Time `gorm:"check:next_action IS NULL OR next_action >= created_at" json:"next_action,omitempty"`
	LastAction *time.Time `json:"last_action,omitempty"`

	Notes string `gorm:"type:text" json:"notes"`

	Actions []Action `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
