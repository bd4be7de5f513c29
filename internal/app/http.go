package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lpessoa/go-tarefas/internal/config"
	v1 "github.com/lpessoa/go-tarefas/internal/delivery/http/v1"
	"github.com/lpessoa/go-tarefas/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(v1.RequestID())
	router.Use(v1.AccessLog(globalLogger))
	// The browser client may be served from anywhere.
	router.Use(cors.New(permissiveCORSConfig()))
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
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
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

func permissiveCORSConfig() cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return corsCfg
}

func registerRoutes(router *gin.Engine) {
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	userService := services.NewUserService(globalLogger, globalPostgresPool)
	handler := v1.New(globalLogger, taskService, userService)

	router.GET("/health", handler.HandleHealth)
	router.GET("/statuses", handler.HandleListStatuses)

	router.POST("/users", handler.HandleCreateUser)
	router.GET("/users", handler.HandleListUsers)

	router.POST("/tasks", handler.HandleCreateTask)
	router.GET("/tasks", handler.HandleListTasks)
	router.GET("/tasks/:id", handler.HandleGetTask)
	router.PUT("/tasks/:id", handler.HandleUpdateTask)
	router.DELETE("/tasks/:id", handler.HandleDeleteTask)

	router.StaticFile("/", "./web/index.html")
	router.StaticFile("/app.js", "./web/app.js")
	router.StaticFile("/styles.css", "./web/styles.css")
}
