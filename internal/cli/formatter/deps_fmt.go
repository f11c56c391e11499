package formatter

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/scheduler"
)

// FormatDependencies renders an item's direct blockers and dependents as a tree.
func FormatDependencies(resp *app.DependencyResponse) string {
	root := fmt.Sprintf("%s %s", ItemRef(resp.Item.ID), Bold(resp.Item.Subject))
	items := []TreeItem{{Title: root, Detail: fmt.Sprintf("%d downstream", resp.DownstreamCount)}}

	items = append(items, TreeItem{Title: StyleYellow.Render("waits on"), Level: 1, IsLast: false})
	items = append(items, relatedTree(resp.Blockers)...)
	items = append(items, TreeItem{Title: StyleBlue.Render("blocks"), Level: 1, IsLast: true})
	items = append(items, relatedTree(resp.Dependents)...)

	return RenderBox("Dependencies", RenderTree(items))
}

func relatedTree(related []scheduler.RelatedItem) []TreeItem {
	if len(related) == 0 {
		return []TreeItem{{Title: "nothing", Level: 2, IsLast: true, Muted: true}}
	}
	out := make([]TreeItem, 0, len(related))
	for i, r := range related {
		ti := TreeItem{Level: 2, IsLast: i == len(related)-1}
		if r.Hidden {
			ti.Title = ItemRef(r.ID) + " (not yours)"
			ti.Muted = true
		} else {
			ti.Title = ItemRef(r.ID) + " " + r.Item.Subject
			if r.Item.DueDate != nil {
				ti.Detail = "due " + domain.FormatDate(*r.Item.DueDate)
			}
		}
		out = append(out, ti)
	}
	return out
}
