package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lpessoa/go-tarefas/internal/models"
	"github.com/lpessoa/go-tarefas/internal/services"
)

type taskResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	StatusID        int64     `json:"status_id"`
	StatusName      string    `json:"status_name"`
	ResponsibleID   *int64    `json:"responsible_id"`
	ResponsibleName *string   `json:"responsible_name"`
}

func newTaskResponse(task *models.JoinedTask) taskResponse {
	return taskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
		StatusID:        task.StatusID,
		StatusName:      task.StatusName,
		ResponsibleID:   task.ResponsibleUserID,
		ResponsibleName: task.ResponsibleName,
	}
}

type createTaskRequest struct {
	Title             string  `json:"title"`
	Description       *string `json:"description"`
	ResponsibleUserID *int64  `json:"responsible_user_id"`
	StatusID          *int64  `json:"status_id"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:             req.Title,
		Description:       req.Description,
		ResponsibleUserID: req.ResponsibleUserID,
		StatusID:          req.StatusID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTaskByID(c, id)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to get task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title             optional[string] `json:"title"`
	Description       optional[string] `json:"description"`
	ResponsibleUserID optional[int64]  `json:"responsible_user_id"`
	StatusID          optional[int64]  `json:"status_id"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateTaskParams{ID: id}
	if req.Title.Present() {
		if req.Title.Value() == nil {
			abort(c, newBadRequestError(services.ErrEmptyTitle.Error()))
			return
		}
		params.Title = req.Title.Value()
	}
	if req.Description.Present() {
		params.SetDescription = true
		params.Description = req.Description.Value()
	}
	if req.ResponsibleUserID.Present() {
		params.SetResponsible = true
		params.ResponsibleUserID = req.ResponsibleUserID.Value()
	}
	// An explicit null status keeps the stored value: the status
	// column is non-nullable.
	if req.StatusID.Present() {
		params.StatusID = req.StatusID.Value()
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, id)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task removed"})
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	filter := services.TaskFilter{}

	statusID, ok := queryInt64(c, "status_id")
	if !ok {
		return
	}
	filter.StatusID = statusID

	responsibleID, ok := queryInt64(c, "responsible_user_id")
	if !ok {
		return
	}
	filter.ResponsibleUserID = responsibleID

	order := strings.ToLower(c.DefaultQuery("order", "desc"))
	filter.OrderAscending = order == "asc"

	tasks, err := h.tasks.ListTasks(c, filter)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, newTaskResponse(task))
	}

	c.JSON(http.StatusOK, response)
}

func abortTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
	case errors.Is(err, services.ErrEmptyTitle):
		abort(c, newBadRequestError(services.ErrEmptyTitle.Error()))
	case errors.Is(err, services.ErrStatusNotFound):
		abort(c, newBadRequestError(services.ErrStatusNotFound.Error()))
	case errors.Is(err, services.ErrResponsibleNotFound):
		abort(c, newBadRequestError(services.ErrResponsibleNotFound.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}

func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, newBadRequestError(errInvalidTaskID.Error()))
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		abort(c, newBadRequestError(errInvalidFilter.Error()))
		return nil, false
	}
	return &value, true
}
