package models

import "time"

// OutboxStatus tracks delivery of an outbox event.
type OutboxStatus string

// Outbox states.
const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxDone       OutboxStatus = "done"
	OutboxFailed     OutboxStatus = "failed"
)

// OutboxEvent is a side effect recorded in the same transaction as the write that caused it.
type OutboxEvent struct {
	ID          uint64       `gorm:"primaryKey"`
	Kind        string       `gorm:"size:100;not null;index"`
	Payload     []byte       `gorm:"not null"`
	Status      OutboxStatus `gorm:"size:20;not null;default:'pending';index"`
	Attempts    int          `gorm:"not null;default:0"`
	LastError   string       `gorm:"column:last_error;type:text;not null;default:''"`
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// TableName sets the table name.
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
