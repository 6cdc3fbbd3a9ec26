package model

import (
	"time"
)

type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Subcategories []string  `json:"subcategories"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
