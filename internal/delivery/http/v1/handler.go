package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lpessoa/go-tarefas/internal/services"
)

type Handler interface {
	HandleHealth(c *gin.Context)
	HandleListStatuses(c *gin.Context)

	HandleCreateUser(c *gin.Context)
	HandleListUsers(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
	users  services.UserService
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	userService services.UserService,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
		users:  userService,
	}
}
