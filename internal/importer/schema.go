package importer

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// Feed is the tracker issue export: {"issues": [...]}.
type Feed struct {
	Issues []IssueImport
}

// IssueImport is one issue as it appears in the feed. Absent or null
// optional fields stay nil.
type IssueImport struct {
	ID             int
	Subject        string
	StartDate      *string
	DueDate        *string
	EstimatedHours *float64
	SpentHours     float64
	DoneRatio      int
	ClosedOn       *string
	UpdatedOn      *string
	AssigneeID     *int
	Relations      []RelationImport

	// typeErrors lists fields of the wrong JSON type, reported by ValidateFeed.
	typeErrors []string
}

// RelationImport is a relation record. The feed lists each relation on both
// of its issues with the same issue_id/issue_to_id.
type RelationImport struct {
	IssueID      int
	IssueToID    int
	RelationType string
}

// LoadFeed reads and parses a feed file.
func LoadFeed(path string) (*Feed, error) {
	data, err := ReadFeedFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFeed(data)
}

// ReadFeedFile reads the raw feed bytes. A path of "-" reads standard input.
func ReadFeedFile(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}
	return data, nil
}

// ParseFeed reads the feed structure. Only malformed JSON or a missing issues
// array fail here; field-level problems surface from ValidateFeed.
func ParseFeed(data []byte) (*Feed, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing feed: invalid JSON")
	}
	issues := gjson.GetBytes(data, "issues")
	if !issues.IsArray() {
		return nil, fmt.Errorf("parsing feed: \"issues\" must be an array")
	}

	feed := &Feed{}
	issues.ForEach(func(_, v gjson.Result) bool {
		feed.Issues = append(feed.Issues, parseIssue(v))
		return true
	})
	return feed, nil
}

func parseIssue(v gjson.Result) IssueImport {
	var is IssueImport
	is.ID = is.intField(v, "id")
	is.Subject = v.Get("subject").String()
	is.StartDate = optionalString(v, "start_date")
	is.DueDate = optionalString(v, "due_date")
	is.EstimatedHours = is.optionalNumber(v, "estimated_hours")
	if spent := is.optionalNumber(v, "spent_hours"); spent != nil {
		is.SpentHours = *spent
	}
	if ratio := is.optionalNumber(v, "done_ratio"); ratio != nil {
		is.DoneRatio = int(*ratio)
	}
	is.ClosedOn = optionalString(v, "closed_on")
	is.UpdatedOn = optionalString(v, "updated_on")
	if a := v.Get("assigned_to.id"); a.Exists() && a.Type != gjson.Null {
		id := is.intField(v, "assigned_to.id")
		is.AssigneeID = &id
	}

	v.Get("relations").ForEach(func(_, r gjson.Result) bool {
		is.Relations = append(is.Relations, RelationImport{
			IssueID:      int(r.Get("issue_id").Int()),
			IssueToID:    int(r.Get("issue_to_id").Int()),
			RelationType: r.Get("relation_type").String(),
		})
		return true
	})
	return is
}

func (is *IssueImport) intField(v gjson.Result, path string) int {
	r := v.Get(path)
	if r.Type != gjson.Number {
		if r.Exists() && r.Type != gjson.Null {
			is.typeErrors = append(is.typeErrors, fmt.Sprintf("%s must be a number", path))
		}
		return 0
	}
	return int(r.Int())
}

func (is *IssueImport) optionalNumber(v gjson.Result, path string) *float64 {
	r := v.Get(path)
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if r.Type != gjson.Number {
		is.typeErrors = append(is.typeErrors, fmt.Sprintf("%s must be a number", path))
		return nil
	}
	f := r.Float()
	return &f
}

func optionalString(v gjson.Result, path string) *string {
	r := v.Get(path)
	if !r.Exists() || r.Type == gjson.Null || r.String() == "" {
		return nil
	}
	s := r.String()
	return &s
}
