package services

import (
	"context"
	"errors"

	"github.com/lpessoa/go-tarefas/internal/models"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrEmptyTitle          = errors.New("title is required and must not be blank")
	ErrStatusNotFound      = errors.New("invalid status")
	ErrResponsibleNotFound = errors.New("responsible user does not exist")
	ErrEmailTaken          = errors.New("email already registered")
)

type TaskService interface {
	// CreateTask validates the referenced status and responsible
	// user, inserts the task and returns it joined with display
	// names. A nil StatusID resolves to the default status.
	//
	// It returns ErrEmptyTitle, ErrStatusNotFound or
	// ErrResponsibleNotFound on validation failure.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.JoinedTask, error)

	// GetTaskByID returns the joined task or ErrTaskNotFound.
	GetTaskByID(ctx context.Context, id int64) (*models.JoinedTask, error)

	// UpdateTask merges the given fields over the stored row and
	// returns the joined result. Fields left unset keep their
	// stored values.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.JoinedTask, error)

	// DeleteTask removes the task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id int64) error

	// ListTasks returns every task matching the filter, joined
	// with display names, ordered by creation time.
	ListTasks(ctx context.Context, filter TaskFilter) ([]*models.JoinedTask, error)
}

type UserService interface {
	// CreateUser inserts a user and returns the stored record.
	// It returns ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)

	// ListUsers returns all users ordered by creation time
	// descending, or at most one user when email is non-empty.
	ListUsers(ctx context.Context, email string) ([]*models.User, error)
}

type CreateTaskParams struct {
	Title             string
	Description       *string
	ResponsibleUserID *int64
	StatusID          *int64
}

// UpdateTaskParams carries the merge semantics of a task update:
// a nil Title or StatusID keeps the stored value, while Description
// and ResponsibleUserID are applied only when their Set flag is true
// (a true flag with a nil value clears the column).
type UpdateTaskParams struct {
	ID int64

	Title *string

	SetDescription bool
	Description    *string

	SetResponsible    bool
	ResponsibleUserID *int64

	StatusID *int64
}

type TaskFilter struct {
	StatusID          *int64
	ResponsibleUserID *int64
	OrderAscending    bool
}

type CreateUserParams struct {
	Name  string
	Email string
}
