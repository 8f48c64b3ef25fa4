package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService interface {
	Process(ctx context.Context, req *dto.PaymentRequest) (*dto.PaymentResponse, error)
	GetAll(ctx context.Context) ([]*dto.PaymentResponse, error)
	GetByID(ctx context.Context, paymentID uint) (*dto.PaymentResponse, error)
	PendingReconciliation(ctx context.Context) ([]*dto.ReconciliationTask, error)
}

type paymentServiceImpl struct {
	db          *gorm.DB
	paymentRepo repository.PaymentRepository
	taskRepo    repository.TaskRepository
	decision    PaymentDecision
	wakeup      chan<- struct{}
}

// NewPaymentService wires the orchestrator. wakeup nudges the dispatcher
// after a task is enqueued; it may be nil.
func NewPaymentService(
	db *gorm.DB,
	paymentRepo repository.PaymentRepository,
	taskRepo repository.TaskRepository,
	decision PaymentDecision,
	wakeup chan<- struct{},
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		paymentRepo: paymentRepo,
		taskRepo:    taskRepo,
		decision:    decision,
		wakeup:      wakeup,
	}
}

// Process decides the payment outcome and records, in one transaction, the
// immutable payment and the order transition it implies. The payment is
// returned to the caller whether or not the order service has acknowledged
// the transition yet; the dispatcher owns delivery from here.
func (s *paymentServiceImpl) Process(ctx context.Context, req *dto.PaymentRequest) (*dto.PaymentResponse, error) {
	if req.OrderID == 0 {
		return nil, fmt.Errorf("orderId is required")
	}

	status := s.decision.Decide(ctx, req.OrderID, req.Amount)

	action := model.TransitionCancel
	if status == model.PaymentApproved {
		action = model.TransitionConfirm
	}

	payment := &model.Payment{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
		Status:  status,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment in db: %w", err)
		}

		task := &model.OrderTransitionTask{
			EventID:       uuid.NewString(),
			PaymentID:     payment.ID,
			OrderID:       req.OrderID,
			Action:        action,
			Status:        model.TaskPending,
			NextAttemptAt: time.Now(),
		}
		if err := s.taskRepo.Enqueue(ctx, tx, task); err != nil {
			return fmt.Errorf("enqueue order transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.wakeup != nil {
		select {
		case s.wakeup <- struct{}{}:
		default:
		}
	}

	return mapPayment(payment), nil
}

func (s *paymentServiceImpl) GetAll(ctx context.Context) ([]*dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]*dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		out[i] = mapPayment(payment)
	}
	return out, nil
}

func (s *paymentServiceImpl) GetByID(ctx context.Context, paymentID uint) (*dto.PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return mapPayment(payment), nil
}

// PendingReconciliation exposes transitions the order service has not yet
// acknowledged, so an operator can see where payments and orders may
// disagree instead of that gap being silent.
func (s *paymentServiceImpl) PendingReconciliation(ctx context.Context) ([]*dto.ReconciliationTask, error) {
	tasks, err := s.taskRepo.FindUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unresolved tasks: %w", err)
	}

	out := make([]*dto.ReconciliationTask, len(tasks))
	for i, task := range tasks {
		out[i] = &dto.ReconciliationTask{
			TaskID:    task.ID,
			PaymentID: task.PaymentID,
			OrderID:   task.OrderID,
			Action:    task.Action,
			Status:    task.Status,
			Attempts:  task.Attempts,
			LastError: task.LastError,
			CreatedAt: task.CreatedAt,
		}
	}
	return out, nil
}

func mapPayment(payment *model.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
	}
}
