package service

import (
	"context"
	"errors"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/client"
	"github.com/Raulcudris/microservices-fargate-demo/internal/config"
	"github.com/Raulcudris/microservices-fargate-demo/internal/metrics"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"

	"github.com/sirupsen/logrus"
)

// Dispatcher drains the order-transition outbox. Each task is retried with
// exponential backoff until the order service acknowledges it or attempts
// run out; either way the outcome is recorded on the task, never silently
// dropped.
type Dispatcher struct {
	taskRepo    repository.TaskRepository
	orderClient client.OrderClient
	log         *logrus.Entry
	outbox      *metrics.OutboxMetrics
	wakeup      <-chan struct{}

	pollInterval time.Duration
	callTimeout  time.Duration
	backoffBase  time.Duration
	maxAttempts  int
	batchSize    int
}

func NewDispatcher(
	taskRepo repository.TaskRepository,
	orderClient client.OrderClient,
	cfg config.Outbox,
	log *logrus.Entry,
	outbox *metrics.OutboxMetrics,
	wakeup <-chan struct{},
) *Dispatcher {
	return &Dispatcher{
		taskRepo:     taskRepo,
		orderClient:  orderClient,
		log:          log,
		outbox:       outbox,
		wakeup:       wakeup,
		pollInterval: cfg.PollInterval,
		callTimeout:  cfg.CallTimeout,
		backoffBase:  cfg.BackoffBase,
		maxAttempts:  cfg.MaxAttempts,
		batchSize:    cfg.BatchSize,
	}
}

// Run blocks until ctx is cancelled. In-flight downstream calls are given
// their full timeout even during shutdown so a transition is never left
// half-applied by a dying process.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		d.drain(ctx)

		select {
		case <-ctx.Done():
			return
		case <-d.wakeup:
		case <-ticker.C:
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		tasks, err := d.taskRepo.FetchDue(ctx, time.Now(), d.batchSize)
		if err != nil {
			d.log.WithError(err).Error("fetch due transition tasks")
			return
		}
		if len(tasks) == 0 {
			return
		}

		for _, task := range tasks {
			d.dispatch(ctx, task)
		}

		if len(tasks) < d.batchSize {
			return
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, task *model.OrderTransitionTask) {
	// Detached from request/shutdown cancellation on purpose.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.callTimeout)
	defer cancel()

	var err error
	switch task.Action {
	case model.TransitionConfirm:
		err = d.orderClient.ConfirmOrder(callCtx, task.OrderID)
	case model.TransitionCancel:
		err = d.orderClient.CancelOrder(callCtx, task.OrderID)
	default:
		d.resolve(ctx, task, "failed", func() error {
			return d.taskRepo.MarkFailed(ctx, task.ID, "unknown action "+task.Action)
		})
		return
	}

	log := d.log.WithFields(logrus.Fields{
		"task_id":    task.ID,
		"payment_id": task.PaymentID,
		"order_id":   task.OrderID,
		"action":     task.Action,
	})

	switch {
	case err == nil:
		d.resolve(ctx, task, "done", func() error {
			return d.taskRepo.MarkDone(ctx, task.ID, "")
		})

	case errors.Is(err, model.ErrInvalidTransition):
		// The order reached a terminal state some other way; this task
		// lost the race. Resolved, but worth the note.
		log.WithError(err).Warn("order already terminal, transition dropped")
		d.resolve(ctx, task, "superseded", func() error {
			return d.taskRepo.MarkDone(ctx, task.ID, err.Error())
		})

	case errors.Is(err, model.ErrNotFound):
		log.WithError(err).Error("order does not exist, giving up")
		d.resolve(ctx, task, "failed", func() error {
			return d.taskRepo.MarkFailed(ctx, task.ID, err.Error())
		})

	default:
		attempts := task.Attempts + 1
		if attempts >= d.maxAttempts {
			log.WithError(err).WithField("attempts", attempts).
				Error("transition attempts exhausted, payment and order may disagree")
			d.resolve(ctx, task, "failed", func() error {
				return d.taskRepo.MarkFailed(ctx, task.ID, err.Error())
			})
			return
		}

		next := time.Now().Add(d.backoff(attempts))
		log.WithError(err).WithField("attempts", attempts).Warn("order transition failed, will retry")
		if uerr := d.taskRepo.Reschedule(ctx, task.ID, attempts, err.Error(), next); uerr != nil {
			d.log.WithError(uerr).Error("reschedule transition task")
		}
		if d.outbox != nil {
			d.outbox.Dispatched.WithLabelValues("retried").Inc()
		}
	}
}

func (d *Dispatcher) resolve(ctx context.Context, task *model.OrderTransitionTask, result string, update func() error) {
	if err := update(); err != nil {
		d.log.WithError(err).WithField("task_id", task.ID).Error("update transition task")
		return
	}
	if d.outbox != nil {
		d.outbox.Dispatched.WithLabelValues(result).Inc()
		d.outbox.PendingAge.Observe(time.Since(task.CreatedAt).Seconds())
	}
}

func (d *Dispatcher) backoff(attempts int) time.Duration {
	backoff := d.backoffBase
	for i := 1; i < attempts; i++ {
		backoff *= 2
		if backoff > time.Minute {
			return time.Minute
		}
	}
	return backoff
}
