// Package session describes who is acting on the issue store.
package session

import "citysense-be/models"

// User is the caller identity carried through a request.
type User struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// IsAdmin reports whether u holds the admin capability. A nil user is
// never an admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == models.RoleAdmin
}

// Context holds the current user of a session, or nil when nobody is
// logged in.
type Context struct {
	CurrentUser *User
}

func (c *Context) IsAdmin() bool {
	return c != nil && c.CurrentUser.IsAdmin()
}

// LoggedIn reports whether the session has a user.
func (c *Context) LoggedIn() bool {
	return c != nil && c.CurrentUser != nil
}

// FromUser builds the session identity for a stored user.
func FromUser(u *models.User) *User {
	return &User{ID: u.ID.Hex(), Name: u.Name, Role: u.Role}
}
