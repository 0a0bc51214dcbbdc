package models

import "time"

// Instructor teaches events inside one organization.
type Instructor struct {
	ID             int64
	OrganizationID int64
	Name           string
	Expertise      string
	Bio            string
	Image          string
	CoursesCount   int
}

// Category groups events. Organization is optional for legacy rows.
type Category struct {
	ID             int64
	OrganizationID *int64
	Title          string
}

// Event is a sellable session. Price is whole currency units, no fractions.
type Event struct {
	ID              int64
	OrganizationID  int64
	Title           string
	CategoryID      *int64
	InstructorID    *int64
	StartDatetime   time.Time
	DateDisplay     string
	TimeDisplay     string
	IsVirtual       bool
	Location        *string
	MeetingLink     *string
	Price           int64
	Capacity        int
	RegisteredCount int
	Image           string
	Description     string
	CreatedAt       time.Time

	// Loaded by the repository through joins; nil when the reference is null.
	Organization *Organization
	Category     *Category
	Instructor   *Instructor
}

// DefaultEventCapacity mirrors the column default.
const DefaultEventCapacity = 100
