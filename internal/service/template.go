package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/internal/repo"
)

// TemplateService - CRUD быстрых шаблонов и их инстанцирование в задачи
type TemplateService struct {
	repo  repo.TemplateRepository
	tasks *TaskService
	now   func() time.Time
}

func NewTemplateService(tplRepo repo.TemplateRepository, tasks *TaskService) *TemplateService {
	return &TemplateService{
		repo:  tplRepo,
		tasks: tasks,
		now:   time.Now,
	}
}

func (s *TemplateService) Create(ctx context.Context, actor model.Identity, tpl model.QuickTemplate) (model.QuickTemplate, error) {
	tpl.OwnerID = actor.UserID
	tpl.Name = strings.TrimSpace(tpl.Name)

	if err := s.validate(tpl); err != nil {
		return tpl, err
	}
	if err := s.checkDuplicateName(ctx, tpl); err != nil {
		return tpl, err
	}

	created, err := s.repo.Create(ctx, tpl)
	if errors.Is(err, repo.ErrorConflict) {
		return tpl, fmt.Errorf("%w: duplicate template name %q", ErrValidation, tpl.Name)
	}
	return created, err
}

func (s *TemplateService) Get(ctx context.Context, actor model.Identity, id int64) (model.QuickTemplate, error) {
	tpl, err := s.repo.Get(ctx, id)
	if err != nil {
		return tpl, err
	}
	if tpl.OwnerID != actor.UserID {
		return model.QuickTemplate{}, repo.ErrorNotFound
	}
	return tpl, nil
}

func (s *TemplateService) List(ctx context.Context, actor model.Identity) ([]model.QuickTemplate, error) {
	return s.repo.ListByOwner(ctx, actor.UserID)
}

func (s *TemplateService) Update(ctx context.Context, actor model.Identity, tpl model.QuickTemplate) (model.QuickTemplate, error) {
	existing, err := s.Get(ctx, actor, tpl.ID)
	if err != nil {
		return tpl, err
	}

	tpl.OwnerID = existing.OwnerID
	tpl.Name = strings.TrimSpace(tpl.Name)

	if err := s.validate(tpl); err != nil {
		return tpl, err
	}
	if tpl.Name != existing.Name {
		if err := s.checkDuplicateName(ctx, tpl); err != nil {
			return tpl, err
		}
	}

	updated, err := s.repo.Update(ctx, tpl)
	if errors.Is(err, repo.ErrorConflict) {
		return tpl, fmt.Errorf("%w: duplicate template name %q", ErrValidation, tpl.Name)
	}
	return updated, err
}

func (s *TemplateService) Delete(ctx context.Context, actor model.Identity, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Instantiate подставляет переменные шаблона и создает задачу со статусом
// по умолчанию для типа шаблона
func (s *TemplateService) Instantiate(ctx context.Context, actor model.Identity, id int64) (model.Task, error) {
	tpl, err := s.Get(ctx, actor, id)
	if err != nil {
		return model.Task{}, err
	}
	if !tpl.IsActive {
		return model.Task{}, fmt.Errorf("%w: template %q is inactive", ErrValidation, tpl.Name)
	}

	now := s.now()
	task := model.Task{
		Title:       substitute(tpl.TitleTemplate, now, actor),
		Description: substitute(tpl.DescTemplate, now, actor),
		Type:        tpl.Type,
		Priority:    tpl.Priority,
		Status:      model.DefaultStatus(tpl.Type),
		OwnerID:     actor.UserID,
	}
	return s.tasks.CreateSystem(ctx, task)
}

// substitute заменяет известные плейсхолдеры, нераспознанные остаются как есть
func substitute(s string, now time.Time, actor model.Identity) string {
	display := actor.Nickname
	if display == "" {
		display = actor.Username
	}

	return strings.NewReplacer(
		"{date}", now.Format("2006-01-02"),
		"{time}", now.Format("15:04"),
		"{datetime}", now.Format("2006-01-02 15:04"),
		"{user}", display,
		"{username}", actor.Username,
	).Replace(s)
}

func (s *TemplateService) validate(tpl model.QuickTemplate) error {
	if tpl.Name == "" {
		return fmt.Errorf("%w: template name must not be empty", ErrValidation)
	}
	if strings.TrimSpace(tpl.TitleTemplate) == "" {
		return fmt.Errorf("%w: title template must not be empty", ErrValidation)
	}
	if !model.ValidType(tpl.Type) {
		return fmt.Errorf("%w: unknown task type %q", ErrValidation, tpl.Type)
	}
	return nil
}

// Имя шаблона уникально в пределах владельца, сравнение чувствительно к регистру
func (s *TemplateService) checkDuplicateName(ctx context.Context, tpl model.QuickTemplate) error {
	existing, err := s.repo.ListByOwner(ctx, tpl.OwnerID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID != tpl.ID && other.Name == tpl.Name {
			return fmt.Errorf("%w: duplicate template name %q", ErrValidation, tpl.Name)
		}
	}
	return nil
}
