package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Infrastructure IssueCategory = "infrastructure"
	Environment    IssueCategory = "environment"
	Safety         IssueCategory = "safety"
	Services       IssueCategory = "services"
	Other          IssueCategory = "other"
)

// Categories lists every valid category.
var Categories = []IssueCategory{Infrastructure, Environment, Safety, Services, Other}

// Valid reports whether c is one of the known categories.
func (c IssueCategory) Valid() bool {
	switch c {
	case Infrastructure, Environment, Safety, Services, Other:
		return true
	}
	return false
}

// Department returns the department an issue in this category is routed to.
func (c IssueCategory) Department() string {
	switch c {
	case Infrastructure:
		return "Public Works"
	case Environment:
		return "Environmental Services"
	case Safety:
		return "Public Safety"
	case Services:
		return "Parks & Recreation"
	default:
		return "General Administration"
	}
}

// IssuePriority enum
type IssuePriority string

const (
	Low    IssuePriority = "low"
	Medium IssuePriority = "medium"
	High   IssuePriority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p IssuePriority) Valid() bool {
	switch p {
	case Low, Medium, High:
		return true
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Submitted  IssueStatus = "submitted"
	Assigned   IssueStatus = "assigned"
	InProgress IssueStatus = "in-progress"
	Resolved   IssueStatus = "resolved"
)

// Statuses is the forward progression of an issue.
var Statuses = []IssueStatus{Submitted, Assigned, InProgress, Resolved}

// Valid reports whether s is one of the known statuses.
func (s IssueStatus) Valid() bool {
	switch s {
	case Submitted, Assigned, InProgress, Resolved:
		return true
	}
	return false
}

// Next returns the status following s. It returns false for resolved and
// for unknown statuses.
func (s IssueStatus) Next() (IssueStatus, bool) {
	switch s {
	case Submitted:
		return Assigned, true
	case Assigned:
		return InProgress, true
	case InProgress:
		return Resolved, true
	default:
		return s, false
	}
}

// Color is the marker color used on the overview map.
func (s IssueStatus) Color() string {
	switch s {
	case Submitted:
		return "#e53e3e"
	case Assigned:
		return "#dd6b20"
	case InProgress:
		return "#3182ce"
	case Resolved:
		return "#38a169"
	default:
		return "#718096"
	}
}

// Location is where the issue was pinned on the map.
type Location struct {
	Latitude  float64 `bson:"lat" json:"lat"`
	Longitude float64 `bson:"lng" json:"lng"`
	Address   string  `bson:"address" json:"address"`
}

// Reporter is a copy of the submitting user taken at creation time.
type Reporter struct {
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact" json:"contact"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Category           IssueCategory      `bson:"category" json:"category"`
	Priority           IssuePriority      `bson:"priority" json:"priority"`
	Status             IssueStatus        `bson:"status" json:"status"`
	Description        string             `bson:"description" json:"description"`
	Location           Location           `bson:"location" json:"location"`
	Reporter           Reporter           `bson:"user" json:"user"`
	AssignedDepartment string             `bson:"assignedDepartment" json:"assignedDepartment"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IssueDraft carries the fields a reporter supplies when submitting an issue.
type IssueDraft struct {
	Title       string        `json:"title"`
	Category    IssueCategory `json:"category"`
	Priority    IssuePriority `json:"priority"`
	Description string        `json:"description"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Address     string        `json:"address_formatted"`
}
