package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/services"
)

type getPostResponse struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"taskId"`
	TaskName      string    `json:"taskName"`
	Excuse        string    `json:"excuse"`
	DelayCount    int       `json:"delayCount"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
	UserAvatar    string    `json:"userAvatar"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	IsLiked       bool      `json:"isLiked"`
	IsFavorited   bool      `json:"isFavorited"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newGetPostResponse(post *models.PublicPost) getPostResponse {
	return getPostResponse{
		ID:            post.ID,
		TaskID:        post.TaskID,
		TaskName:      post.TaskName,
		Excuse:        post.Excuse,
		DelayCount:    post.DelayCount,
		UserID:        post.UserID,
		UserName:      post.UserName,
		UserAvatar:    post.UserAvatar,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		IsLiked:       post.IsLiked,
		IsFavorited:   post.IsFavorited,
		CreatedAt:     post.CreatedAt,
	}
}

func (h *handlerImpl) HandleListPosts(c *gin.Context) {
	params := services.ListPostsParams{
		Sort:     c.DefaultQuery("sort", services.SortRecent),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
		ViewerID: resolveUserID(c, c.Query("userId")),
	}

	posts, err := h.feed.ListPosts(c, params)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]getPostResponse, len(posts))
	for i, post := range posts {
		response[i] = newGetPostResponse(post)
	}
	c.JSON(http.StatusOK, response)
}

type sharePostRequest struct {
	TaskID     string `json:"taskId" binding:"required"`
	TaskName   string `json:"taskName" binding:"required"`
	Excuse     string `json:"excuse" binding:"required"`
	DelayCount int    `json:"delayCount"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName" binding:"required"`
	UserAvatar string `json:"userAvatar"`
}

func (h *handlerImpl) HandleSharePost(c *gin.Context) {
	var req sharePostRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	post, err := h.feed.Share(c, services.SharePostParams{
		TaskID:     req.TaskID,
		TaskName:   req.TaskName,
		Excuse:     req.Excuse,
		DelayCount: req.DelayCount,
		UserID:     resolveUserID(c, req.UserID),
		UserName:   req.UserName,
		UserAvatar: req.UserAvatar,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": newGetPostResponse(post)})
}

type toggleInteractionRequest struct {
	PublicTaskID string `json:"publicTaskId" binding:"required"`
	Type         string `json:"type" binding:"required"`
	UserID       string `json:"userId"`
}

type toggleInteractionResponse struct {
	Type       string `json:"type"`
	Active     bool   `json:"active"`
	LikesCount *int   `json:"likesCount,omitempty"`
}

func (h *handlerImpl) HandleToggleInteraction(c *gin.Context) {
	var req toggleInteractionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	result, err := h.feed.ToggleInteraction(c, services.ToggleInteractionParams{
		PostID: req.PublicTaskID,
		Type:   req.Type,
		UserID: resolveUserID(c, req.UserID),
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": toggleInteractionResponse{
		Type:       result.Type,
		Active:     result.Active,
		LikesCount: result.LikesCount,
	}})
}

type getCommentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newGetCommentResponse(comment *models.Comment) getCommentResponse {
	return getCommentResponse{
		ID:         comment.ID,
		UserID:     comment.UserID,
		UserName:   comment.UserName,
		UserAvatar: comment.UserAvatar,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
}

func (h *handlerImpl) HandleListComments(c *gin.Context) {
	postID := c.Query("publicTaskId")
	if postID == "" {
		abort(c, newBadRequestError("no publicTaskId provided"))
		return
	}

	comments, err := h.feed.Comments(c, postID, queryInt(c, "limit"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]getCommentResponse, len(comments))
	for i, comment := range comments {
		response[i] = newGetCommentResponse(comment)
	}
	c.JSON(http.StatusOK, response)
}

type addCommentRequest struct {
	PublicTaskID string `json:"publicTaskId" binding:"required"`
	Content      string `json:"content" binding:"required,max=500"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName" binding:"required"`
	UserAvatar   string `json:"userAvatar"`
}

func (h *handlerImpl) HandleAddComment(c *gin.Context) {
	var req addCommentRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	comment, err := h.feed.AddComment(c, services.AddCommentParams{
		PublicTaskID: req.PublicTaskID,
		Content:      req.Content,
		UserID:       resolveUserID(c, req.UserID),
		UserName:     req.UserName,
		UserAvatar:   req.UserAvatar,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": newGetCommentResponse(comment)})
}

type activityEntryResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Content   string          `json:"content,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	Task      getPostResponse `json:"task"`
}

func (h *handlerImpl) HandleGetActivity(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		abort(c, newBadRequestError("no userId provided"))
		return
	}

	entries, err := h.feed.Activity(c, services.ActivityParams{
		UserID:   userID,
		Category: c.DefaultQuery("category", services.ActivityAll),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]activityEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = activityEntryResponse{
			ID:        entry.ID,
			Type:      entry.Type,
			Content:   entry.Content,
			CreatedAt: entry.CreatedAt,
			Task:      newGetPostResponse(&entry.Post),
		}
	}
	c.JSON(http.StatusOK, response)
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
