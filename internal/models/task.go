package models

import "time"

type Task struct {
	ID                int64
	Title             string
	Description       *string
	ResponsibleUserID *int64
	StatusID          int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// JoinedTask is a task enriched with the status name and, when a
// responsible user is assigned, that user's name.
type JoinedTask struct {
	Task
	StatusName      string
	ResponsibleName *string
}
