package handlers

import (
	"errors"
	"net/http"

	dom "github.com/hc-organizations/todo-backend/internal/domain"
	"github.com/hc-organizations/todo-backend/internal/dto"
	"github.com/hc-organizations/todo-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TodoHandler struct {
	svc *service.TodoService
	log *zap.Logger
}

func NewTodoHandler(svc *service.TodoService, log *zap.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		validationError(c, err)
		return
	}

	var content string
	if req.Content != nil {
		content = *req.Content
	}
	t, err := h.svc.Create(c.Request.Context(), req.Title, content,
		req.StatusOrDefault(), req.StartDate.Ptr(), req.EndDate.Ptr())
	if err != nil {
		h.internalError(c, "create todo", err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromDomain(t))
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Param        id   path      string  true  "Todo ID (UUID)"
// @Success      200  {object}  dto.TodoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, "get todo", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDomain(t))
}

// List godoc
// @Summary      List todos, optionally filtered by status
// @Tags         todos
// @Produce      json
// @Param        status  query     string  false  "Status filter"  Enums(NOT_STARTED, TODO, IN_PROGRESS, DONE)
// @Success      200     {array}   dto.TodoResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	var filter *dom.Status
	if raw, ok := c.GetQuery("status"); ok {
		st, valid := dom.ParseStatus(raw)
		if !valid {
			validationError(c, &dto.ValidationError{Field: "status", Message: "unknown status value"})
			return
		}
		filter = &st
	}
	list, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.internalError(c, "list todos", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDomainList(list))
}

// Update godoc
// @Summary      Update a todo (partial; provided fields only)
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Todo ID (UUID)"
// @Param        body  body      dto.UpdateTodoRequest  true  "Partial update"
// @Success      200   {object}  dto.TodoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		validationError(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, "update todo", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDomain(t))
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Param        id   path  string  true  "Todo ID (UUID)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, "delete todo", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, &dto.ValidationError{Field: "id", Message: "must be a valid UUID"})
		return uuid.UUID{}, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
}

// bindingError reports a request-shape failure (malformed JSON, missing
// required field, bound constraint). Echoing the binder's message is safe:
// it describes the input, not internals.
func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error:   "validation failed",
		Details: []dto.ValidationError{{Field: "body", Message: err.Error()}},
	})
}

func validationError(c *gin.Context, err error) {
	var ve *dto.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "validation failed",
			Details: []dto.ValidationError{*ve},
		})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "validation failed"})
}

// internalError logs the full failure and answers with a fixed generic body;
// persistence error detail never reaches the client.
func (h *TodoHandler) internalError(c *gin.Context, op string, err error) {
	h.log.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
