package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderCancelled = "CANCELLED"

	ChannelWeb = "WEB"
)

type Order struct {
	ID         uint            `gorm:"primaryKey"`
	CustomerID uint            `gorm:"index;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// PENDING is the only non-terminal status; it is left exactly once.
	Status       string `gorm:"size:16;index;not null"`
	Channel      string `gorm:"size:16;not null"`
	ContactPhone string `gorm:"size:32"`
	Notes        string `gorm:"size:512"`
	ConfirmedAt  *time.Time
	CreatedAt    time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Terminal reports whether no further status transition is allowed.
func (o *Order) Terminal() bool {
	return o.Status == OrderConfirmed || o.Status == OrderCancelled
}

type OrderItem struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null"`
	ProductID uint  `gorm:"index;not null"`
	Quantity  int32 `gorm:"not null"`
	// Catalog price at order-creation time. Later catalog changes must
	// not alter this snapshot.
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}
