package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangeSource records who moved an issue to a new status.
type ChangeSource string

const (
	SourceAdmin     ChangeSource = "admin"
	SourceSimulator ChangeSource = "simulator"
)

// StatusChange is one entry of an issue's status history. Entries are
// append-only.
type StatusChange struct {
	Issue     primitive.ObjectID `bson:"issue" json:"issue"`
	From      IssueStatus        `bson:"from" json:"from"`
	To        IssueStatus        `bson:"to" json:"to"`
	Source    ChangeSource       `bson:"source" json:"source"`
	ChangedBy string             `bson:"changedBy" json:"changedBy"`
	At        time.Time          `bson:"at" json:"at"`
}
