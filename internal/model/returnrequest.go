package model

import (
	"time"
)

type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
)

type ReturnRequest struct {
	ID         int64        `json:"id"`
	OrderID    string       `json:"order_id"`
	UserID     int64        `json:"user_id"`
	Reason     string       `json:"reason"`
	ProofImage string       `json:"proof_image,omitempty"`
	Status     ReturnStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
