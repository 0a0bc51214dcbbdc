package models

import "time"

// User represents a platform account. Organizers carry an organization.
type User struct {
	ID             int64
	Username       string
	Password       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	IsOrganizer    bool
	IsActive       bool
	OrganizationID *int64
	DateJoined     time.Time
}

// HasOrganization reports whether the user may create tenant-scoped rows.
func (u *User) HasOrganization() bool {
	return u != nil && u.OrganizationID != nil
}
