package models

import "time"

// AuditLog is append-only. Rows reference clients/actions by table name and
// id without a foreign key, so entries survive deletion of the row they
// describe.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID string `gorm:"size:36;not null" json:"event_id"`

	TableName string `gorm:"size:50;not null;index" json:"table_name"`
	Operation string `gorm:"size:10;not null;check:operation IN ('insert','update','delete')" json:"operation"`

	// Nullable: the recorder keeps the entry even when no integer id is
	// resolvable from the statement.
	RecordID *uint `json:"record_id,omitempty"`

	Before []byte `gorm:"type:jsonb" json:"before,omitempty"`
	After  []byte `gorm:"type:jsonb" json:"after,omitempty"`

	Actor     string `gorm:"size:100;not null;default:'system'" json:"actor"`
	IP        string `gorm:"size:45" json:"ip,omitempty"`
	UserAgent string `gorm:"size:255" json:"user_agent,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
