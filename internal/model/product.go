package model

import (
	"time"
)

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url,omitempty"`
	Price       float64   `json:"price"`
	CategoryID  int64     `json:"category_id"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
