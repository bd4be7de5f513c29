package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lpessoa/go-tarefas/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

const selectJoinedTaskColumns = `
SELECT t.id,
       t.title,
       t.description,
       t.created_at,
       t.updated_at,
       s.id   AS status_id,
       s.name AS status_name,
       u.id   AS responsible_id,
       u.name AS responsible_name
FROM todo_tasks t
         JOIN todo_task_status s ON s.id = t.status_id
         LEFT JOIN todo_users u ON u.id = t.responsible_user_id
`

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.JoinedTask, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		s.logger.Error().Msg("blank task title")
		return nil, ErrEmptyTitle
	}

	statusID := models.DefaultStatusID
	if params.StatusID != nil {
		statusID = *params.StatusID
	}

	exists, err := s.statusExists(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Error().
			Int64("status_id", statusID).
			Msg("status not found")
		return nil, ErrStatusNotFound
	}

	if params.ResponsibleUserID != nil {
		exists, err = s.userExists(ctx, *params.ResponsibleUserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			s.logger.Error().
				Int64("responsible_user_id", *params.ResponsibleUserID).
				Msg("responsible user not found")
			return nil, ErrResponsibleNotFound
		}
	}

	const insertTaskQuery = `
INSERT INTO todo_tasks (title,
                        description,
                        responsible_user_id,
                        status_id)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	var taskID int64
	err = s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		title,
		params.Description,
		params.ResponsibleUserID,
		statusID,
	).Scan(&taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", taskID).
		Msg("inserted task")

	task, err := s.selectJoinedTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (*models.JoinedTask, error) {
	task, err := s.selectJoinedTask(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("task found")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.JoinedTask, error) {
	current := models.Task{ID: params.ID}

	const selectTaskQuery = `
SELECT title,
       description,
       responsible_user_id,
       status_id
FROM todo_tasks
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		current.ID,
	).Scan(
		&current.Title,
		&current.Description,
		&current.ResponsibleUserID,
		&current.StatusID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", current.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", current.ID).
			Msg("failed to select task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", current.ID).
		Msg("selected task")

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			s.logger.Error().Msg("blank task title")
			return nil, ErrEmptyTitle
		}
		current.Title = title
	}
	// A nil StatusID keeps the stored value: the column is
	// non-nullable, so an explicit null is coerced to "unchanged".
	if params.StatusID != nil {
		exists, err := s.statusExists(ctx, *params.StatusID)
		if err != nil {
			return nil, err
		}
		if !exists {
			s.logger.Error().
				Int64("status_id", *params.StatusID).
				Msg("status not found")
			return nil, ErrStatusNotFound
		}
		current.StatusID = *params.StatusID
	}
	if params.SetResponsible {
		if params.ResponsibleUserID != nil {
			exists, err := s.userExists(ctx, *params.ResponsibleUserID)
			if err != nil {
				return nil, err
			}
			if !exists {
				s.logger.Error().
					Int64("responsible_user_id", *params.ResponsibleUserID).
					Msg("responsible user not found")
				return nil, ErrResponsibleNotFound
			}
		}
		current.ResponsibleUserID = params.ResponsibleUserID
	}
	if params.SetDescription {
		current.Description = params.Description
	}

	const updateTaskQuery = `
UPDATE todo_tasks
SET title = $1,
    description = $2,
    responsible_user_id = $3,
    status_id = $4,
    updated_at = now()
WHERE id = $5
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		current.Title,
		current.Description,
		current.ResponsibleUserID,
		current.StatusID,
		current.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", current.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", current.ID).
		Msg("updated task")

	task, err := s.selectJoinedTask(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", current.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM todo_tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, filter TaskFilter) ([]*models.JoinedTask, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.StatusID != nil {
		args = append(args, *filter.StatusID)
		where = append(where, fmt.Sprintf("t.status_id = $%d", len(args)))
	}
	if filter.ResponsibleUserID != nil {
		args = append(args, *filter.ResponsibleUserID)
		where = append(where, fmt.Sprintf("t.responsible_user_id = $%d", len(args)))
	}

	direction := "DESC"
	if filter.OrderAscending {
		direction = "ASC"
	}

	query := selectJoinedTaskColumns
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	query += "ORDER BY t.created_at " + direction

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.JoinedTask, 0)
	for rows.Next() {
		task := new(models.JoinedTask)
		err = scanJoinedTask(rows, task)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) selectJoinedTask(ctx context.Context, id int64) (*models.JoinedTask, error) {
	const selectJoinedTaskQuery = selectJoinedTaskColumns + `WHERE t.id = $1`

	task := new(models.JoinedTask)
	err := scanJoinedTask(s.pgPool.QueryRow(ctx, selectJoinedTaskQuery, id), task)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select joined task")
		return nil, err
	}
	return task, nil
}

func scanJoinedTask(row pgx.Row, task *models.JoinedTask) error {
	return row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.StatusID,
		&task.StatusName,
		&task.ResponsibleUserID,
		&task.ResponsibleName,
	)
}

func (s *taskServiceImpl) statusExists(ctx context.Context, id int64) (bool, error) {
	const statusExistsQuery = `
SELECT EXISTS (SELECT 1 FROM todo_task_status WHERE id = $1)
`
	var exists bool
	err := s.pgPool.QueryRow(ctx, statusExistsQuery, id).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("status_id", id).
			Msg("failed to check status existence")
		return false, err
	}
	return exists, nil
}

func (s *taskServiceImpl) userExists(ctx context.Context, id int64) (bool, error) {
	const userExistsQuery = `
SELECT EXISTS (SELECT 1 FROM todo_users WHERE id = $1)
`
	var exists bool
	err := s.pgPool.QueryRow(ctx, userExistsQuery, id).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to check user existence")
		return false, err
	}
	return exists, nil
}
