package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/services"
)

type Handler interface {
	HandleIdentityMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTaskHistory(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleSweepTasks(c *gin.Context)

	HandleAddExcuse(c *gin.Context)
	HandleGetExcuses(c *gin.Context)

	HandleGetStats(c *gin.Context)
	HandleGetExcuseStats(c *gin.Context)

	HandleListPosts(c *gin.Context)
	HandleSharePost(c *gin.Context)
	HandleToggleInteraction(c *gin.Context)
	HandleListComments(c *gin.Context)
	HandleAddComment(c *gin.Context)
	HandleGetActivity(c *gin.Context)
}

type handlerImpl struct {
	logger  zerolog.Logger
	tasks   services.TaskService
	excuses services.ExcuseService
	sweep   services.SweepService
	stats   services.StatsService
	feed    services.FeedService

	jwtIssuer     string
	jwtSigningKey []byte
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	excuseService services.ExcuseService,
	sweepService services.SweepService,
	statsService services.StatsService,
	feedService services.FeedService,
	jwtIssuer string,
	jwtSigningKey []byte,
) Handler {
	return &handlerImpl{
		logger:        logger,
		tasks:         taskService,
		excuses:       excuseService,
		sweep:         sweepService,
		stats:         statsService,
		feed:          feedService,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
	}
}
