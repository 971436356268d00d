package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mlipin/todoplanner/internal/model"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByParent(ctx context.Context, parentID int64) ([]model.Task, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) HasChildren(ctx context.Context, parentID int64) (bool, error) {
	args := m.Called(ctx, parentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) ListCreatedBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	args := m.Called(ctx, id, deleted)
	return args.Error(0)
}

func (m *MockTaskRepository) ListDeleted(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) MarkAllCompleted(ctx context.Context, ownerID *int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) ClearCompleted(ctx context.Context, ownerID *int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) BatchRestore(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockTemplateRepository - мок репозитория быстрых шаблонов
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, tpl model.QuickTemplate) (model.QuickTemplate, error) {
	args := m.Called(ctx, tpl)
	return args.Get(0).(model.QuickTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Get(ctx context.Context, id int64) (model.QuickTemplate, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.QuickTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.QuickTemplate, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.QuickTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, tpl model.QuickTemplate) (model.QuickTemplate, error) {
	args := m.Called(ctx, tpl)
	return args.Get(0).(model.QuickTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
