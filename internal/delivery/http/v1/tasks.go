package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

type getTaskResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DelayCount    int        `json:"delayCount"`
	LastDelayedAt *time.Time `json:"lastDelayedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:            task.ID,
		Name:          task.Name,
		Status:        task.Status,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
		DelayCount:    task.DelayCount,
		LastDelayedAt: task.LastDelayedAt,
		CompletedAt:   task.CompletedAt,
	}
}

type createTaskRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.Create(c, req.Name)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	status := c.Query("status")

	// Promote overdue tasks before the todo and delayed lists are
	// read, so stale tasks never show up under the wrong tab.
	if status == "" || status == models.StatusTodo || status == models.StatusDelayed {
		_, err := h.sweep.Run(c)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("overdue sweep failed before task read")
		}
	}

	tasks, err := h.tasks.Query(c, status)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTaskHistory(c *gin.Context) {
	names, err := h.tasks.History(c)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	status := c.Query("status")
	if status == "" {
		abort(c, newBadRequestError("no status provided"))
		return
	}

	task, err := h.tasks.SetStatus(c, taskID, status)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	err := h.tasks.Delete(c, taskID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleSweepTasks(c *gin.Context) {
	promoted, err := h.sweep.Run(c)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promoted": promoted})
}
