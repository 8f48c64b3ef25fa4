package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// -------- users --------

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type NewUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ValidateRequest describes the request the token is being presented for,
// so the auth service can apply the route policy.
type ValidateRequest struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// -------- products --------

type NewProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	Category    string          `json:"category"`
}

type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	Category    string          `json:"category,omitempty"`
}

// -------- orders --------

type OrderItemRequest struct {
	ProductID uint  `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID   uint               `json:"customerId"`
	ContactPhone string             `json:"contactPhone"`
	Notes        string             `json:"notes"`
	Items        []OrderItemRequest `json:"items"`
}

type OrderResponse struct {
	OrderID uint            `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
	Status  string          `json:"status"`
}

// -------- payments --------

type PaymentRequest struct {
	OrderID uint            `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
}

type PaymentResponse struct {
	PaymentID uint            `json:"paymentId"`
	OrderID   uint            `json:"orderId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ReconciliationTask surfaces an order transition that has not yet been
// acknowledged by the order service.
type ReconciliationTask struct {
	TaskID    uint      `json:"taskId"`
	PaymentID uint      `json:"paymentId"`
	OrderID   uint      `json:"orderId"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"lastError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// -------- shared --------

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
