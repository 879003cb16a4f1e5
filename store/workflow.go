package store

import (
	"fmt"

	"citysense-be/models"
	"citysense-be/session"
)

// Workflow decides who may change an issue's status and to what.
//
// Admin changes may jump to any status, backwards included. Simulated
// progression goes through IssueStatus.Next and stops at resolved.
type Workflow struct{}

// Authorize fails with ErrUnauthorized unless actor is an admin.
func (Workflow) Authorize(actor *session.User) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

// AdminTransition validates an explicit admin status change.
func (w Workflow) AdminTransition(actor *session.User, target models.IssueStatus) error {
	if err := w.Authorize(actor); err != nil {
		return err
	}
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}
	return nil
}
