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

type TemplateHandler struct {
	service *service.TemplateService
	logger  *zap.Logger
}

func NewTemplateHandler(srv *service.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TemplateHandler) Routes(r chi.Router) {
	r.Post("/quick-templates", h.Create)
	r.Get("/quick-templates", h.List)
	r.Get("/quick-templates/{id}", h.Get)
	r.Put("/quick-templates/{id}", h.Update)
	r.Delete("/quick-templates/{id}", h.Delete)
	r.Post("/quick-templates/{id}/instantiate", h.Instantiate)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	// Шаблон активен, пока явно не выключен
	req := model.QuickTemplate{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	tpl, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/quick-templates/%d", tpl.ID))
	respond.JSON(w, r, http.StatusCreated, tpl)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	tpl, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tpl)
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	tpls, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tpls)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	req := model.QuickTemplate{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	req.ID = id

	tpl, err := h.service.Update(r.Context(), actor, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tpl)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TemplateHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	task, err := h.service.Instantiate(r.Context(), actor, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TemplateHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPermission):
		respond.Error(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
