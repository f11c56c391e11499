package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

// ValidateFeed checks the feed for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateFeed(feed *Feed) []error {
	var errs []error
	seen := make(map[int]bool, len(feed.Issues))
	for i := range feed.Issues {
		is := &feed.Issues[i]
		prefix := fmt.Sprintf("issues[%d]", i)
		if is.ID > 0 {
			prefix = fmt.Sprintf("issue #%d", is.ID)
		}
		for _, msg := range is.typeErrors {
			errs = append(errs, fmt.Errorf("%s: %s", prefix, msg))
		}

		if is.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s: id must be a positive number", prefix))
		} else if seen[is.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", prefix))
		}
		seen[is.ID] = true

		errs = append(errs, validateIssue(prefix, is)...)
	}
	return errs
}

func validateIssue(prefix string, is *IssueImport) []error {
	var errs []error

	start, startErr := optionalDate(prefix, "start_date", is.StartDate)
	due, dueErr := optionalDate(prefix, "due_date", is.DueDate)
	for _, err := range []error{startErr, dueErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if start != nil && due != nil && due.Before(*start) {
		errs = append(errs, fmt.Errorf("%s: due_date %s is before start_date %s", prefix, *is.DueDate, *is.StartDate))
	}

	if is.EstimatedHours != nil && *is.EstimatedHours < 0 {
		errs = append(errs, fmt.Errorf("%s: estimated_hours must be >= 0, got %v", prefix, *is.EstimatedHours))
	}
	if is.SpentHours < 0 {
		errs = append(errs, fmt.Errorf("%s: spent_hours must be >= 0, got %v", prefix, is.SpentHours))
	}
	if is.DoneRatio < 0 || is.DoneRatio > 100 {
		errs = append(errs, fmt.Errorf("%s: done_ratio must be between 0 and 100, got %d", prefix, is.DoneRatio))
	}
	if is.ClosedOn != nil {
		if _, err := parseTimestamp(*is.ClosedOn); err != nil {
			errs = append(errs, fmt.Errorf("%s: closed_on: %v", prefix, err))
		}
	}
	if is.UpdatedOn != nil {
		if _, err := parseTimestamp(*is.UpdatedOn); err != nil {
			errs = append(errs, fmt.Errorf("%s: updated_on: %v", prefix, err))
		}
	}

	for j, rel := range is.Relations {
		rp := fmt.Sprintf("%s: relations[%d]", prefix, j)
		if !domain.ValidRelationTypes[domain.RelationType(rel.RelationType)] {
			errs = append(errs, fmt.Errorf("%s: invalid relation_type %q", rp, rel.RelationType))
		}
		if rel.IssueID <= 0 || rel.IssueToID <= 0 {
			errs = append(errs, fmt.Errorf("%s: issue_id and issue_to_id are required", rp))
			continue
		}
		if is.ID > 0 && rel.IssueID != is.ID && rel.IssueToID != is.ID {
			errs = append(errs, fmt.Errorf("%s: relation %d->%d does not involve this issue", rp, rel.IssueID, rel.IssueToID))
		}
	}
	return errs
}

func optionalDate(prefix, field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: invalid date format %q (expected YYYY-MM-DD)", prefix, field, *s)
	}
	return &t, nil
}

// parseTimestamp accepts RFC 3339 timestamps and bare dates.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC 3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
