package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lpessoa/go-tarefas/internal/models"
	"github.com/lpessoa/go-tarefas/internal/services"
)

// fakeTaskService mirrors the store-backed task service semantics in
// memory so handlers can be exercised without Postgres.
type fakeTaskService struct {
	statuses map[int64]string
	users    map[int64]string
	tasks    map[int64]*models.JoinedTask
	nextID   int64
	clock    time.Time
}

func newFakeTaskService() *fakeTaskService {
	statuses := make(map[int64]string, len(models.Statuses))
	for _, status := range models.Statuses {
		statuses[status.ID] = status.Name
	}
	return &fakeTaskService{
		statuses: statuses,
		users:    make(map[int64]string),
		tasks:    make(map[int64]*models.JoinedTask),
		clock:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTaskService) addUser(id int64, name string) {
	f.users[id] = name
}

func (f *fakeTaskService) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeTaskService) CreateTask(_ context.Context, params services.CreateTaskParams) (*models.JoinedTask, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, services.ErrEmptyTitle
	}

	statusID := models.DefaultStatusID
	if params.StatusID != nil {
		statusID = *params.StatusID
	}
	statusName, ok := f.statuses[statusID]
	if !ok {
		return nil, services.ErrStatusNotFound
	}

	var responsibleName *string
	if params.ResponsibleUserID != nil {
		name, ok := f.users[*params.ResponsibleUserID]
		if !ok {
			return nil, services.ErrResponsibleNotFound
		}
		responsibleName = &name
	}

	f.nextID++
	now := f.tick()
	task := &models.JoinedTask{
		Task: models.Task{
			ID:                f.nextID,
			Title:             title,
			Description:       params.Description,
			ResponsibleUserID: params.ResponsibleUserID,
			StatusID:          statusID,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		StatusName:      statusName,
		ResponsibleName: responsibleName,
	}
	f.tasks[task.ID] = task
	return cloneTask(task), nil
}

func (f *fakeTaskService) GetTaskByID(_ context.Context, id int64) (*models.JoinedTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, services.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (f *fakeTaskService) UpdateTask(_ context.Context, params services.UpdateTaskParams) (*models.JoinedTask, error) {
	task, ok := f.tasks[params.ID]
	if !ok {
		return nil, services.ErrTaskNotFound
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, services.ErrEmptyTitle
		}
		task.Title = title
	}
	if params.StatusID != nil {
		name, ok := f.statuses[*params.StatusID]
		if !ok {
			return nil, services.ErrStatusNotFound
		}
		task.StatusID = *params.StatusID
		task.StatusName = name
	}
	if params.SetResponsible {
		if params.ResponsibleUserID != nil {
			name, ok := f.users[*params.ResponsibleUserID]
			if !ok {
				return nil, services.ErrResponsibleNotFound
			}
			task.ResponsibleUserID = params.ResponsibleUserID
			task.ResponsibleName = &name
		} else {
			task.ResponsibleUserID = nil
			task.ResponsibleName = nil
		}
	}
	if params.SetDescription {
		task.Description = params.Description
	}
	task.UpdatedAt = f.tick()

	return cloneTask(task), nil
}

func (f *fakeTaskService) DeleteTask(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return services.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskService) ListTasks(_ context.Context, filter services.TaskFilter) ([]*models.JoinedTask, error) {
	tasks := make([]*models.JoinedTask, 0, len(f.tasks))
	for _, task := range f.tasks {
		if filter.StatusID != nil && task.StatusID != *filter.StatusID {
			continue
		}
		if filter.ResponsibleUserID != nil {
			if task.ResponsibleUserID == nil || *task.ResponsibleUserID != *filter.ResponsibleUserID {
				continue
			}
		}
		tasks = append(tasks, cloneTask(task))
	}

	sort.Slice(tasks, func(i, j int) bool {
		if filter.OrderAscending {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func cloneTask(task *models.JoinedTask) *models.JoinedTask {
	clone := *task
	return &clone
}

type fakeUserService struct {
	users  []*models.User
	nextID int64
	clock  time.Time
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		clock: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeUserService) CreateUser(_ context.Context, params services.CreateUserParams) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == params.Email {
			return nil, services.ErrEmailTaken
		}
	}

	f.nextID++
	f.clock = f.clock.Add(time.Second)
	user := &models.User{
		ID:        f.nextID,
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: f.clock,
		UpdatedAt: f.clock,
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserService) ListUsers(_ context.Context, email string) ([]*models.User, error) {
	if email != "" {
		for _, user := range f.users {
			if user.Email == email {
				return []*models.User{user}, nil
			}
		}
		return []*models.User{}, nil
	}

	users := make([]*models.User, len(f.users))
	copy(users, f.users)
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func newTestRouter(tasks services.TaskService, users services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := New(zerolog.Nop(), tasks, users)

	router := gin.New()
	router.GET("/health", handler.HandleHealth)
	router.GET("/statuses", handler.HandleListStatuses)
	router.POST("/users", handler.HandleCreateUser)
	router.GET("/users", handler.HandleListUsers)
	router.POST("/tasks", handler.HandleCreateTask)
	router.GET("/tasks", handler.HandleListTasks)
	router.GET("/tasks/:id", handler.HandleGetTask)
	router.PUT("/tasks/:id", handler.HandleUpdateTask)
	router.DELETE("/tasks/:id", handler.HandleDeleteTask)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
