package projections

import "citysense-be/models"

// Filter narrows a snapshot. Empty fields do not constrain.
type Filter struct {
	Status   models.IssueStatus   `form:"status" json:"status,omitempty"`
	Category models.IssueCategory `form:"category" json:"category,omitempty"`
}

// Matches reports whether issue passes every non-empty field of f.
func (f Filter) Matches(issue models.Issue) bool {
	if f.Status != "" && issue.Status != f.Status {
		return false
	}
	if f.Category != "" && issue.Category != f.Category {
		return false
	}
	return true
}

// ApplyFilter returns the issues of snapshot that match f, in their
// original order. The result never aliases snapshot.
func ApplyFilter(snapshot []models.Issue, f Filter) []models.Issue {
	out := make([]models.Issue, 0, len(snapshot))
	for _, issue := range snapshot {
		if f.Matches(issue) {
			out = append(out, issue)
		}
	}
	return out
}
