package dto

import "time"

type CategoryInput struct {
	Name string `json:"name"`
}

type CategoryOutput struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
