package service

import (
	"context"
	"math/rand"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"github.com/shopspring/decimal"
)

// PaymentDecision is the pluggable approve/reject policy. A real gateway
// integration slots in here without touching the orchestration around it.
type PaymentDecision interface {
	Decide(ctx context.Context, orderID uint, amount decimal.Decimal) string
}

// CoinFlipDecision approves roughly half of all payments. It is a stand-in
// for a real payment gateway, nothing more.
type CoinFlipDecision struct{}

func (CoinFlipDecision) Decide(ctx context.Context, orderID uint, amount decimal.Decimal) string {
	if rand.Intn(2) == 0 {
		return model.PaymentApproved
	}
	return model.PaymentRejected
}
