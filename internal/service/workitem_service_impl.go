package service

import (
	"context"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
)

type workItemService struct {
	workItems repository.WorkItemRepo
}

func NewWorkItemService(workItems repository.WorkItemRepo) WorkItemService {
	return &workItemService{workItems: workItems}
}

func (s *workItemService) GetByID(ctx context.Context, id int) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) List(ctx context.Context, filter repository.ItemFilter) ([]*domain.WorkItem, error) {
	return s.workItems.List(ctx, filter)
}

func (s *workItemService) Delete(ctx context.Context, id int) error {
	return s.workItems.Delete(ctx, id)
}
