package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lpessoa/go-tarefas/internal/models"
	"github.com/lpessoa/go-tarefas/internal/services"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("name and email are required"))
		return
	}

	user, err := h.users.CreateUser(c, services.CreateUserParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create user")
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			// 400 rather than 409, per the API contract.
			abort(c, newBadRequestError(services.ErrEmailTaken.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlerImpl) HandleListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c, c.Query("email"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	c.JSON(http.StatusOK, response)
}
