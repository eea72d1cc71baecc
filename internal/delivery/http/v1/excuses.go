package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

type getExcuseResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	WordCount int       `json:"wordCount"`
}

func newGetExcuseResponse(excuse *models.Excuse) getExcuseResponse {
	return getExcuseResponse{
		ID:        excuse.ID,
		TaskID:    excuse.TaskID,
		Content:   excuse.Content,
		CreatedAt: excuse.CreatedAt,
		WordCount: excuse.WordCount,
	}
}

type addExcuseRequest struct {
	TaskID  string `json:"taskId" binding:"required"`
	Content string `json:"content" binding:"required,max=500"`
}

func (h *handlerImpl) HandleAddExcuse(c *gin.Context) {
	var req addExcuseRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	excuse, err := h.excuses.Add(c, req.TaskID, req.Content)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetExcuseResponse(excuse))
}

func (h *handlerImpl) HandleGetExcuses(c *gin.Context) {
	taskID := c.Query("taskId")

	var (
		excuses []*models.Excuse
		err     error
	)
	if taskID == "" {
		excuses, err = h.excuses.All(c)
	} else {
		excuses, err = h.excuses.ByTask(c, taskID)
	}
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]getExcuseResponse, len(excuses))
	for i, excuse := range excuses {
		response[i] = newGetExcuseResponse(excuse)
	}
	c.JSON(http.StatusOK, response)
}
