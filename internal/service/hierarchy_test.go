package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/internal/repo"
)

func parentRef(id int64) *int64 { return &id }

func TestHierarchyResolver_ChildrenOf(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByParent", mock.Anything, int64(1)).Return([]model.Task{
		{ID: 2, ParentID: parentRef(1)},
		{ID: 3, ParentID: parentRef(1)},
	}, nil)
	mockRepo.On("ListByParent", mock.Anything, int64(404)).Return([]model.Task{}, nil)

	resolver := NewHierarchyResolver(mockRepo)

	children, err := resolver.ChildrenOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, children, 2)

	// Неизвестный родитель - пустой список, не ошибка
	children, err = resolver.ChildrenOf(context.Background(), 404)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestHierarchyResolver_ParentOf(t *testing.T) {
	tests := []struct {
		name       string
		task       model.Task
		setupMock  func(*MockTaskRepository)
		wantParent bool
	}{
		{
			name:       "no parent set",
			task:       model.Task{ID: 1},
			setupMock:  func(m *MockTaskRepository) {},
			wantParent: false,
		},
		{
			name: "parent resolves",
			task: model.Task{ID: 2, ParentID: parentRef(1)},
			setupMock: func(m *MockTaskRepository) {
				m.On("Get", mock.Anything, int64(1)).Return(model.Task{ID: 1}, nil)
			},
			wantParent: true,
		},
		{
			name: "missing parent treated as detached",
			task: model.Task{ID: 2, ParentID: parentRef(1)},
			setupMock: func(m *MockTaskRepository) {
				m.On("Get", mock.Anything, int64(1)).Return(model.Task{}, repo.ErrorNotFound)
			},
			wantParent: false,
		},
		{
			name: "deleted parent treated as detached",
			task: model.Task{ID: 2, ParentID: parentRef(1)},
			setupMock: func(m *MockTaskRepository) {
				m.On("Get", mock.Anything, int64(1)).Return(model.Task{ID: 1, IsDeleted: true}, nil)
			},
			wantParent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			resolver := NewHierarchyResolver(mockRepo)
			parent, err := resolver.ParentOf(context.Background(), tt.task)

			require.NoError(t, err)
			if tt.wantParent {
				require.NotNil(t, parent)
			} else {
				assert.Nil(t, parent)
			}
		})
	}
}

func TestHierarchyResolver_ValidateParentAssignment(t *testing.T) {
	t.Run("self parent rejected", func(t *testing.T) {
		resolver := NewHierarchyResolver(new(MockTaskRepository))
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1}, 1)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing parent rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Get", mock.Anything, int64(2)).Return(model.Task{}, repo.ErrorNotFound)

		resolver := NewHierarchyResolver(mockRepo)
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1, OwnerID: 1}, 2)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("deleted parent rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Get", mock.Anything, int64(2)).Return(model.Task{ID: 2, IsDeleted: true}, nil)

		resolver := NewHierarchyResolver(mockRepo)
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1, OwnerID: 1}, 2)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("two level cycle rejected", func(t *testing.T) {
		// Кандидат 2 сам ссылается на задачу 1: цикл 1 -> 2 -> 1
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Get", mock.Anything, int64(2)).Return(model.Task{ID: 2, OwnerID: 1, ParentID: parentRef(1)}, nil)
		mockRepo.On("CountByOwner", mock.Anything, int64(1)).Return(5, nil)

		resolver := NewHierarchyResolver(mockRepo)
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1, OwnerID: 1}, 2)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("deep cycle rejected", func(t *testing.T) {
		// 4 -> 3 -> 2 -> 1, кандидат для 1 - задача 4
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Get", mock.Anything, int64(4)).Return(model.Task{ID: 4, OwnerID: 1, ParentID: parentRef(3)}, nil)
		mockRepo.On("Get", mock.Anything, int64(3)).Return(model.Task{ID: 3, OwnerID: 1, ParentID: parentRef(2)}, nil)
		mockRepo.On("Get", mock.Anything, int64(2)).Return(model.Task{ID: 2, OwnerID: 1, ParentID: parentRef(1)}, nil)
		mockRepo.On("CountByOwner", mock.Anything, int64(1)).Return(10, nil)

		resolver := NewHierarchyResolver(mockRepo)
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1, OwnerID: 1}, 4)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("malformed chain terminates", func(t *testing.T) {
		// 2 и 3 ссылаются друг на друга; задача 1 в цикле не участвует,
		// но обход обязан завершиться за счет границы по числу задач
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Get", mock.Anything, int64(2)).Return(model.Task{ID: 2, OwnerID: 1, ParentID: parentRef(3)}, nil)
		mockRepo.On("Get", mock.Anything, int64(3)).Return(model.Task{ID: 3, OwnerID: 1, ParentID: parentRef(2)}, nil)
		mockRepo.On("CountByOwner", mock.Anything, int64(1)).Return(3, nil)

		resolver := NewHierarchyResolver(mockRepo)
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1, OwnerID: 1}, 2)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("valid chain accepted", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Get", mock.Anything, int64(2)).Return(model.Task{ID: 2, OwnerID: 1, ParentID: parentRef(3)}, nil)
		mockRepo.On("Get", mock.Anything, int64(3)).Return(model.Task{ID: 3, OwnerID: 1}, nil)
		mockRepo.On("CountByOwner", mock.Anything, int64(1)).Return(5, nil)

		resolver := NewHierarchyResolver(mockRepo)
		err := resolver.ValidateParentAssignment(context.Background(), model.Task{ID: 1, OwnerID: 1}, 2)
		assert.NoError(t, err)
	})
}

func TestHierarchyResolver_HasChildren(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("HasChildren", mock.Anything, int64(1)).Return(true, nil)
	mockRepo.On("HasChildren", mock.Anything, int64(2)).Return(false, nil)

	resolver := NewHierarchyResolver(mockRepo)

	has, err := resolver.HasChildren(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = resolver.HasChildren(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, has)
}
