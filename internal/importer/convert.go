package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

// Convert transforms a validated feed into domain work items.
// Call ValidateFeed first; Convert assumes the feed is valid.
func Convert(feed *Feed, now time.Time) ([]*domain.WorkItem, error) {
	items := make([]*domain.WorkItem, 0, len(feed.Issues))
	for _, is := range feed.Issues {
		item := &domain.WorkItem{
			ID:         is.ID,
			Subject:    is.Subject,
			SpentHours: is.SpentHours,
			DoneRatio:  is.DoneRatio,
			AssigneeID: is.AssigneeID,
			UpdatedAt:  now.UTC().Truncate(time.Second),
		}
		if is.EstimatedHours != nil {
			item.EstimatedHours = domain.Float64Ptr(*is.EstimatedHours)
		}

		var err error
		if item.StartDate, err = parseOptionalDate(is.StartDate); err != nil {
			return nil, fmt.Errorf("issue #%d start_date: %w", is.ID, err)
		}
		if item.DueDate, err = parseOptionalDate(is.DueDate); err != nil {
			return nil, fmt.Errorf("issue #%d due_date: %w", is.ID, err)
		}
		if is.ClosedOn != nil {
			closed, err := parseTimestamp(*is.ClosedOn)
			if err != nil {
				return nil, fmt.Errorf("issue #%d closed_on: %w", is.ID, err)
			}
			item.ClosedAt = &closed
		}
		if is.UpdatedOn != nil {
			updated, err := parseTimestamp(*is.UpdatedOn)
			if err != nil {
				return nil, fmt.Errorf("issue #%d updated_on: %w", is.ID, err)
			}
			item.UpdatedAt = updated
		}

		for _, rel := range is.Relations {
			item.Relations = append(item.Relations, domain.Relation{
				OwnerItemID:  rel.IssueID,
				TargetItemID: rel.IssueToID,
				Type:         domain.RelationType(rel.RelationType),
			})
		}
		items = append(items, item)
	}
	return items, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
