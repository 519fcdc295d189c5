package evaluation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one monthly performance score, manager to employee only.
type Record struct {
	ID          string          `json:"id"`
	ProfileID   string          `json:"profileId"`
	Employee    string          `json:"employee,omitempty"`
	Month       time.Time       `json:"month"`
	Score       decimal.Decimal `json:"score"`
	Remarks     string          `json:"remarks"`
	EvaluatorID *string         `json:"evaluatorId,omitempty"`
	Evaluator   string          `json:"evaluator,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type AddInput struct {
	ProfileID string
	Month     time.Time
	Score     decimal.Decimal
	Remarks   string
}
