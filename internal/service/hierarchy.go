package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/internal/repo"
)

// HierarchyResolver разрешает родительские связи между задачами
// и отсекает самоссылки и циклы на записи
type HierarchyResolver struct {
	repo repo.TaskRepository
}

func NewHierarchyResolver(taskRepo repo.TaskRepository) *HierarchyResolver {
	return &HierarchyResolver{repo: taskRepo}
}

// ChildrenOf возвращает неудаленных детей в каноническом порядке.
// Для листовой задачи или неизвестного id - пустой список, не ошибка.
func (h *HierarchyResolver) ChildrenOf(ctx context.Context, parentID int64) ([]model.Task, error) {
	return h.repo.ListByParent(ctx, parentID)
}

// ParentOf разрешает ParentID. Отсутствующий, ненайденный или удаленный
// родитель считается отвязанным - возвращается (nil, nil).
func (h *HierarchyResolver) ParentOf(ctx context.Context, t model.Task) (*model.Task, error) {
	if t.ParentID == nil {
		return nil, nil
	}

	parent, err := h.repo.Get(ctx, *t.ParentID)
	if errors.Is(err, repo.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if parent.IsDeleted {
		return nil, nil
	}
	return &parent, nil
}

func (h *HierarchyResolver) HasChildren(ctx context.Context, taskID int64) (bool, error) {
	return h.repo.HasChildren(ctx, taskID)
}

// ValidateParentAssignment отклоняет самородительство и цепочки, которые
// возвращаются к самой задаче. Обход ограничен числом задач владельца,
// чтобы завершаться даже на битых цепочках.
func (h *HierarchyResolver) ValidateParentAssignment(ctx context.Context, t model.Task, candidateParentID int64) error {
	if candidateParentID == t.ID {
		return fmt.Errorf("%w: task cannot be its own parent", ErrValidation)
	}

	parent, err := h.repo.Get(ctx, candidateParentID)
	if errors.Is(err, repo.ErrorNotFound) {
		return fmt.Errorf("%w: parent task %d not found", ErrValidation, candidateParentID)
	}
	if err != nil {
		return err
	}
	if parent.IsDeleted {
		return fmt.Errorf("%w: parent task %d is deleted", ErrValidation, candidateParentID)
	}

	bound, err := h.repo.CountByOwner(ctx, t.OwnerID)
	if err != nil {
		return err
	}

	current := parent
	for steps := 0; current.ParentID != nil; steps++ {
		if steps >= bound {
			return fmt.Errorf("%w: parent chain is malformed", ErrValidation)
		}
		if *current.ParentID == t.ID {
			return fmt.Errorf("%w: parent assignment creates a cycle", ErrValidation)
		}

		next, err := h.repo.Get(ctx, *current.ParentID)
		if errors.Is(err, repo.ErrorNotFound) {
			break // оборванная цепочка дальше не валидируется
		}
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}
