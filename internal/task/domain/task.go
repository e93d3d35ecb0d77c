package domain

import "time"

const DefaultTaskStatus = "pending"

type Category struct {
	ID        int64
	Name      string
	UserID    string
	CreatedAt time.Time
}

type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	UserID      string
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
