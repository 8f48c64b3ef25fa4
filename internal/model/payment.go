package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// Payment is immutable after creation. Several payments may reference the
// same order (retries); the order transition itself is driven by the
// OrderTransitionTask written in the same transaction.
type Payment struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method    string          `gorm:"size:32;not null"`
	Status    string          `gorm:"size:16;not null"`
	CreatedAt time.Time
}

const (
	TransitionConfirm = "confirm"
	TransitionCancel  = "cancel"

	TaskPending = "PENDING"
	TaskDone    = "DONE"
	TaskFailed  = "FAILED"
)

// OrderTransitionTask is the durable record of a payment-triggered order
// transition. It outlives the request that created it and is retried by the
// dispatcher until the order service acknowledges it or attempts run out.
type OrderTransitionTask struct {
	ID            uint      `gorm:"primaryKey"`
	EventID       string    `gorm:"size:64;uniqueIndex;not null"`
	PaymentID     uint      `gorm:"index;not null"`
	OrderID       uint      `gorm:"index;not null"`
	Action        string    `gorm:"size:16;not null"`
	Status        string    `gorm:"size:16;index;not null"`
	Attempts      int       `gorm:"not null"`
	LastError     string    `gorm:"size:512"`
	NextAttemptAt time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
