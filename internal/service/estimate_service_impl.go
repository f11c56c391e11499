package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
)

type estimateService struct {
	estimates repository.EstimateRepo
	workItems repository.WorkItemRepo
}

func NewEstimateService(estimates repository.EstimateRepo, workItems repository.WorkItemRepo) EstimateService {
	return &estimateService{estimates: estimates, workItems: workItems}
}

func (s *estimateService) Set(ctx context.Context, itemID int, hoursRemaining float64) error {
	if hoursRemaining < 0 || math.IsNaN(hoursRemaining) || math.IsInf(hoursRemaining, 0) {
		return fmt.Errorf("remaining hours must be a non-negative number, got %v", hoursRemaining)
	}
	if _, err := s.workItems.GetByID(ctx, itemID); err != nil {
		return err
	}
	return s.estimates.Set(ctx, itemID, hoursRemaining)
}

func (s *estimateService) Clear(ctx context.Context, itemID int) error {
	return s.estimates.Delete(ctx, itemID)
}

func (s *estimateService) List(ctx context.Context) (domain.InternalEstimates, error) {
	return s.estimates.List(ctx)
}
