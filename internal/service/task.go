package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/internal/repo"
)

// TaskService - фасад над хранилищем задач: валидация, скоупинг по владельцу,
// мягкое удаление и массовые операции
type TaskService struct {
	repo      repo.TaskRepository
	hierarchy *HierarchyResolver
}

func NewTaskService(taskRepo repo.TaskRepository) *TaskService {
	return &TaskService{
		repo:      taskRepo,
		hierarchy: NewHierarchyResolver(taskRepo),
	}
}

// Hierarchy отдает резолвер родительских связей, построенный над тем же репозиторием
func (s *TaskService) Hierarchy() *HierarchyResolver {
	return s.hierarchy
}

func (s *TaskService) Create(ctx context.Context, actor model.Identity, t model.Task) (model.Task, error) {
	t.OwnerID = actor.UserID
	return s.CreateSystem(ctx, t)
}

// CreateSystem создает задачу от имени уже выставленного владельца.
// Используется агрегатором отчетов и движком шаблонов.
func (s *TaskService) CreateSystem(ctx context.Context, t model.Task) (model.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Priority == "" {
		t.Priority = model.PriorityNone
	}
	if t.Status == "" {
		t.Status = model.DefaultStatus(t.Type)
	}

	if err := s.validate(t); err != nil {
		return t, err
	}

	if t.ParentID != nil {
		if err := s.hierarchy.ValidateParentAssignment(ctx, t, *t.ParentID); err != nil {
			return t, err
		}
	}

	return s.repo.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, actor model.Identity, id int64) (model.Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return t, err
	}
	// Обычный пользователь видит только свои неудаленные задачи
	if !actor.Elevated && (t.OwnerID != actor.UserID || t.IsDeleted) {
		return model.Task{}, repo.ErrorNotFound
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, actor model.Identity, filter model.TaskFilter) ([]model.Task, error) {
	if !actor.Elevated {
		filter.OwnerID = &actor.UserID
		filter.ShowDeleted = nil // видимость удаленных - только для расширенных прав
	}
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, actor model.Identity, t model.Task) (model.Task, error) {
	existing, err := s.Get(ctx, actor, t.ID)
	if err != nil {
		return t, err
	}
	if existing.IsDeleted {
		return t, ErrImmutable
	}

	t.Title = strings.TrimSpace(t.Title)
	t.OwnerID = existing.OwnerID // владелец неизменяем
	if t.Type == "" {
		t.Type = existing.Type
	}
	if t.Status == "" {
		t.Status = model.DefaultStatus(t.Type)
	}
	if t.Priority == "" {
		t.Priority = existing.Priority
	}

	if err := s.validate(t); err != nil {
		return t, err
	}

	if t.ParentID != nil && (existing.ParentID == nil || *existing.ParentID != *t.ParentID) {
		if err := s.hierarchy.ValidateParentAssignment(ctx, t, *t.ParentID); err != nil {
			return t, err
		}
	}

	return s.repo.Update(ctx, t)
}

func (s *TaskService) ToggleCompleted(ctx context.Context, actor model.Identity, id int64) (model.Task, error) {
	t, err := s.Get(ctx, actor, id)
	if err != nil {
		return t, err
	}
	if t.IsDeleted {
		return t, ErrImmutable
	}

	t.Completed = !t.Completed
	return s.repo.Update(ctx, t)
}

// Delete помечает задачу удаленной. Дочерние задачи не трогаются.
func (s *TaskService) Delete(ctx context.Context, actor model.Identity, id int64) error {
	t, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if t.IsDeleted {
		return fmt.Errorf("%w: task already deleted", ErrValidation)
	}
	return s.repo.SetDeleted(ctx, id, true)
}

// Restore снимает флаг удаления. Только для расширенных прав.
func (s *TaskService) Restore(ctx context.Context, actor model.Identity, id int64) (model.Task, error) {
	if !actor.Elevated {
		return model.Task{}, fmt.Errorf("%w: restore requires elevated capability", ErrPermission)
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return t, err
	}
	if !t.IsDeleted {
		return t, fmt.Errorf("%w: task is not deleted", ErrValidation)
	}

	if err := s.repo.SetDeleted(ctx, id, false); err != nil {
		return t, err
	}
	return s.repo.Get(ctx, id)
}

func (s *TaskService) MarkAllCompleted(ctx context.Context, actor model.Identity) (int64, error) {
	return s.repo.MarkAllCompleted(ctx, s.bulkScope(actor))
}

func (s *TaskService) ClearCompleted(ctx context.Context, actor model.Identity) (int64, error) {
	return s.repo.ClearCompleted(ctx, s.bulkScope(actor))
}

// BatchRestore восстанавливает все переданные id, которые сейчас удалены.
// Ненайденные и неудаленные id молча пропускаются.
func (s *TaskService) BatchRestore(ctx context.Context, actor model.Identity, ids []int64) (int64, error) {
	if !actor.Elevated {
		return 0, fmt.Errorf("%w: batch restore requires elevated capability", ErrPermission)
	}
	return s.repo.BatchRestore(ctx, ids)
}

func (s *TaskService) DeletedList(ctx context.Context, actor model.Identity) ([]model.Task, error) {
	if !actor.Elevated {
		return nil, fmt.Errorf("%w: deleted list requires elevated capability", ErrPermission)
	}
	return s.repo.ListDeleted(ctx)
}

// GroupedRefs - собственные незавершенные неудаленные задачи вызывающего,
// сгруппированные по типу и усеченные до ссылочной формы. Порядок внутри
// группы канонический.
func (s *TaskService) GroupedRefs(ctx context.Context, actor model.Identity) (map[model.TaskType][]model.TaskRef, error) {
	completed := false
	tasks, err := s.repo.List(ctx, model.TaskFilter{
		OwnerID:   &actor.UserID,
		Completed: &completed,
	})
	if err != nil {
		return nil, err
	}

	grouped := make(map[model.TaskType][]model.TaskRef)
	for _, t := range tasks {
		grouped[t.Type] = append(grouped[t.Type], t.Ref())
	}
	return grouped, nil
}

// ListCreatedBetween отдает неудаленные задачи владельца, созданные в окне [from, to)
func (s *TaskService) ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]model.Task, error) {
	return s.repo.ListCreatedBetween(ctx, ownerID, from, to)
}

func (s *TaskService) bulkScope(actor model.Identity) *int64 {
	if actor.Elevated {
		return nil // по всем владельцам
	}
	return &actor.UserID
}

func (s *TaskService) validate(t model.Task) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if len([]rune(t.Title)) > model.MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, model.MaxTitleLen)
	}
	if !model.ValidType(t.Type) {
		return fmt.Errorf("%w: unknown task type %q", ErrValidation, t.Type)
	}
	if !model.ValidStatus(t.Type, t.Status) {
		return fmt.Errorf("%w: invalid status %q for type %q", ErrValidation, t.Status, t.Type)
	}
	return nil
}
