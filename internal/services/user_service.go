package services

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lpessoa/go-tarefas/internal/models"
)

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	const insertUserQuery = `
INSERT INTO todo_users (name, email)
VALUES ($1, $2)
RETURNING id, name, email, created_at, updated_at
`
	user := new(models.User)
	err := s.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		params.Name,
		params.Email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Error().
					Str("email", params.Email).
					Msg("user with this email already exists")
				return nil, ErrEmailTaken
			}
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("created user")
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, email string) ([]*models.User, error) {
	const selectUsersQuery = `
SELECT id, name, email, created_at, updated_at
FROM todo_users
ORDER BY created_at DESC
`
	const selectUserByEmailQuery = `
SELECT id, name, email, created_at, updated_at
FROM todo_users
WHERE email = $1
LIMIT 1
`
	query := selectUsersQuery
	args := make([]any, 0, 1)
	if email != "" {
		query = selectUserByEmailQuery
		args = append(args, email)
	}

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(users)).
		Msg("listed users")
	return users, nil
}
