package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ilovedelay/i-love-delay/internal/config"
	v1 "github.com/ilovedelay/i-love-delay/internal/delivery/http/v1"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT
	v1Handler := v1.New(
		globalLogger,
		globalTaskService,
		globalExcuseService,
		globalSweepService,
		globalStatsService,
		globalFeedService,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
	)

	router = router.Group("/api/v1")
	router.Use(v1Handler.HandleIdentityMiddleware)

	tasksRouter := router.Group("/tasks")
	tasksRouter.POST("", v1Handler.HandleCreateTask)
	tasksRouter.GET("", v1Handler.HandleGetTasks)
	tasksRouter.GET("/history", v1Handler.HandleGetTaskHistory)
	tasksRouter.POST("/sweep", v1Handler.HandleSweepTasks)
	tasksRouter.PATCH("/:id/status", v1Handler.HandleSetTaskStatus)
	tasksRouter.DELETE("/:id", v1Handler.HandleDeleteTask)

	excusesRouter := router.Group("/excuses")
	excusesRouter.POST("", v1Handler.HandleAddExcuse)
	excusesRouter.GET("", v1Handler.HandleGetExcuses)

	statsRouter := router.Group("/stats")
	statsRouter.GET("", v1Handler.HandleGetStats)
	statsRouter.GET("/excuses", v1Handler.HandleGetExcuseStats)

	squareRouter := router.Group("/square")
	squareRouter.GET("/share", v1Handler.HandleListPosts)
	squareRouter.POST("/share", v1Handler.HandleSharePost)
	squareRouter.POST("/interaction", v1Handler.HandleToggleInteraction)
	squareRouter.GET("/comments", v1Handler.HandleListComments)
	squareRouter.POST("/comments", v1Handler.HandleAddComment)

	router.GET("/profile/square/activity", v1Handler.HandleGetActivity)
}
