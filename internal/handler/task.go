package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mlipin/todoplanner/internal/auth"
	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/internal/repo"
	"github.com/mlipin/todoplanner/internal/service"
	"github.com/mlipin/todoplanner/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/tasks", h.Create)
	r.Get("/tasks", h.List)
	r.Get("/tasks/refs", h.Refs)
	r.Get("/tasks/deleted", h.DeletedList)
	r.Post("/tasks/mark-all-completed", h.MarkAllCompleted)
	r.Delete("/tasks/clear-completed", h.ClearCompleted)
	r.Post("/tasks/batch-restore", h.BatchRestore)
	r.Get("/tasks/{id}", h.Get)
	r.Put("/tasks/{id}", h.Update)
	r.Delete("/tasks/{id}", h.Delete)
	r.Get("/tasks/{id}/children", h.Children)
	r.Post("/tasks/{id}/toggle-completed", h.ToggleCompleted)
	r.Post("/tasks/{id}/restore", h.Restore)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.FromContext(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.Task
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	task, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	task, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	var filter model.TaskFilter
	q := r.URL.Query()

	if v := q.Get("completed"); v != "" {
		completed := v == "true" || v == "1" || v == "yes"
		filter.Completed = &completed
	}
	if v := q.Get("search"); v != "" {
		filter.Search = v
	}
	if v := q.Get("type"); v != "" {
		typ := model.TaskType(v)
		filter.Type = &typ
	}
	if v := q.Get("show_deleted"); v != "" {
		show := v == "true" || v == "1" || v == "yes"
		filter.ShowDeleted = &show
	}

	tasks, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req model.Task
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	req.ID = id

	task, err := h.service.Update(r.Context(), actor, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "task deleted",
		"id":      id,
	})
}

func (h *TaskHandler) Children(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	// Родитель должен быть видим вызывающему
	if _, err := h.service.Get(r.Context(), actor, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	children, err := h.service.Hierarchy().ChildrenOf(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, children)
}

func (h *TaskHandler) ToggleCompleted(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	task, err := h.service.ToggleCompleted(r.Context(), actor, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Restore(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	task, err := h.service.Restore(r.Context(), actor, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "task restored",
		"task":    task,
	})
}

func (h *TaskHandler) MarkAllCompleted(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	count, err := h.service.MarkAllCompleted(r.Context(), actor)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int64{"updated_count": count})
}

func (h *TaskHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	count, err := h.service.ClearCompleted(r.Context(), actor)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int64{"deleted_count": count})
}

func (h *TaskHandler) DeletedList(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	tasks, err := h.service.DeletedList(r.Context(), actor)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"count":   len(tasks),
		"results": tasks,
	})
}

func (h *TaskHandler) BatchRestore(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	var req struct {
		TaskIDs []int64 `json:"task_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	count, err := h.service.BatchRestore(r.Context(), actor, req.TaskIDs)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int64{"restored_count": count})
}

func (h *TaskHandler) Refs(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	grouped, err := h.service.GroupedRefs(r.Context(), actor)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, grouped)
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPermission):
		respond.Error(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrImmutable):
		respond.Error(w, r, http.StatusBadRequest, "deleted task cannot be modified")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
