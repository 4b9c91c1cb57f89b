package models

import "time"

type Action struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client,omitempty"`

	Type    string `gorm:"size:20;not null;check:type IN ('message','call')" json:"type"`
	Content string `gorm:"type:text" json:"content"`

	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`

	Result string `gorm:"size:20;not null;default:'pending';check:result IN ('pending','yes','no','no_response','scheduled','purchased')" json:"result"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
