package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionStatus represents the state of a checkout submission.
type SubmissionStatus string

const (
	SubmissionStatusIdle       SubmissionStatus = "idle"
	SubmissionStatusSubmitting SubmissionStatus = "submitting"
	SubmissionStatusSucceeded  SubmissionStatus = "succeeded"
	SubmissionStatusFailed     SubmissionStatus = "failed"
)

// Order is the snapshot handed to the relay at checkout time.
type Order struct {
	Customer  Profile         `json:"customer"`
	Phone     string          `json:"phone"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
