package repository

import (
	"context"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"gorm.io/gorm"
)

// TaskRepository persists order-transition tasks. A task is enqueued in the
// same transaction as its payment and drained by the dispatcher.
type TaskRepository interface {
	Enqueue(ctx context.Context, tx *gorm.DB, task *model.OrderTransitionTask) error
	FetchDue(ctx context.Context, now time.Time, limit int) ([]*model.OrderTransitionTask, error)
	MarkDone(ctx context.Context, taskID uint, note string) error
	MarkFailed(ctx context.Context, taskID uint, lastError string) error
	Reschedule(ctx context.Context, taskID uint, attempts int, lastError string, next time.Time) error
	FindUnresolved(ctx context.Context) ([]*model.OrderTransitionTask, error)
}

type taskRepoImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepoImpl{
		db: db,
	}
}

func (r *taskRepoImpl) Enqueue(ctx context.Context, tx *gorm.DB, task *model.OrderTransitionTask) error {
	return tx.WithContext(ctx).Create(task).Error
}

func (r *taskRepoImpl) FetchDue(ctx context.Context, now time.Time, limit int) ([]*model.OrderTransitionTask, error) {
	var tasks []*model.OrderTransitionTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", model.TaskPending, now).
		Order("id").
		Limit(limit).
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepoImpl) MarkDone(ctx context.Context, taskID uint, note string) error {
	return r.db.WithContext(ctx).Model(&model.OrderTransitionTask{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"status":     model.TaskDone,
			"last_error": note,
		}).Error
}

func (r *taskRepoImpl) MarkFailed(ctx context.Context, taskID uint, lastError string) error {
	return r.db.WithContext(ctx).Model(&model.OrderTransitionTask{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"status":     model.TaskFailed,
			"last_error": lastError,
		}).Error
}

func (r *taskRepoImpl) Reschedule(ctx context.Context, taskID uint, attempts int, lastError string, next time.Time) error {
	return r.db.WithContext(ctx).Model(&model.OrderTransitionTask{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"attempts":        attempts,
			"last_error":      lastError,
			"next_attempt_at": next,
		}).Error
}

// FindUnresolved lists tasks still awaiting reconciliation: pending retries
// and tasks that exhausted their attempts.
func (r *taskRepoImpl) FindUnresolved(ctx context.Context) ([]*model.OrderTransitionTask, error) {
	var tasks []*model.OrderTransitionTask
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{model.TaskPending, model.TaskFailed}).
		Order("id").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}
