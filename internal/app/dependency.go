package app

import (
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/scheduler"
)

type DependencyRequest struct {
	ItemID int
	// AssigneeID limits which related items are shown in full; the rest come
	// back hidden.
	AssigneeID *int
}

type DependencyResponse struct {
	Item            *domain.WorkItem
	Blockers        []scheduler.RelatedItem
	Dependents      []scheduler.RelatedItem
	DownstreamCount int
}
