package app

import (
	"time"

	"github.com/alexanderramin/loadline/internal/scheduler"
)

type FlexibilityRequest struct {
	Now        *time.Time
	AssigneeID *int
}

type FlexibilityView struct {
	ItemID  int
	Subject string
	DueDate *time.Time
	Score   scheduler.FlexibilityScore
}

// FlexibilityResponse lists scored items most at risk first. Unscored holds
// open items without a due date or estimate.
type FlexibilityResponse struct {
	Items    []FlexibilityView
	Unscored []int
}
