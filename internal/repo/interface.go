package repo

import (
	"context"
	"time"

	"github.com/mlipin/todoplanner/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	ListByParent(ctx context.Context, parentID int64) ([]model.Task, error)
	HasChildren(ctx context.Context, parentID int64) (bool, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]model.Task, error)
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	ListDeleted(ctx context.Context) ([]model.Task, error)
	MarkAllCompleted(ctx context.Context, ownerID *int64) (int64, error)
	ClearCompleted(ctx context.Context, ownerID *int64) (int64, error)
	BatchRestore(ctx context.Context, ids []int64) (int64, error)
}

// TemplateRepository определяет интерфейс для быстрых шаблонов задач
type TemplateRepository interface {
	Create(ctx context.Context, tpl model.QuickTemplate) (model.QuickTemplate, error)
	Get(ctx context.Context, id int64) (model.QuickTemplate, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.QuickTemplate, error)
	Update(ctx context.Context, tpl model.QuickTemplate) (model.QuickTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// OwnerRepository отдает аккаунты, зарегистрированные во внешнем сервисе идентификации
type OwnerRepository interface {
	Get(ctx context.Context, id int64) (model.Owner, error)
	ListActive(ctx context.Context) ([]model.Owner, error)
}
