package events

import (
	"strings"
	"time"

	"github.com/hosseinmostafavi2079/roydadpro/internal/categories"
	"github.com/hosseinmostafavi2079/roydadpro/internal/instructors"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/internal/organizations"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Response is the wire shape of an event. The *_details fields are read-only
// snapshots of the referenced rows.
type Response struct {
	ID                  int64                   `json:"id"`
	Title               string                  `json:"title"`
	Category            *int64                  `json:"category"`
	CategoryDetails     *categories.Response    `json:"category_details"`
	Instructor          *int64                  `json:"instructor"`
	InstructorDetails   *instructors.Response   `json:"instructor_details"`
	Organization        int64                   `json:"organization"`
	OrganizationDetails *organizations.Response `json:"organization_details"`
	StartDatetime       time.Time               `json:"start_datetime"`
	DateDisplay         string                  `json:"date_display"`
	TimeDisplay         string                  `json:"time_display"`
	IsVirtual           bool                    `json:"is_virtual"`
	Location            *string                 `json:"location"`
	MeetingLink         *string                 `json:"meeting_link"`
	Price               int64                   `json:"price"`
	Capacity            int                     `json:"capacity"`
	RegisteredCount     int                     `json:"registered_count"`
	Image               *string                 `json:"image"`
	Description         string                  `json:"description"`
}

// NewResponse maps a model to its wire shape. nil stays nil.
func NewResponse(e *models.Event) *Response {
	if e == nil {
		return nil
	}
	return &Response{
		ID:                  e.ID,
		Title:               e.Title,
		Category:            e.CategoryID,
		CategoryDetails:     categories.NewResponse(e.Category),
		Instructor:          e.InstructorID,
		InstructorDetails:   instructors.NewResponse(e.Instructor),
		Organization:        e.OrganizationID,
		OrganizationDetails: organizations.NewResponse(e.Organization),
		StartDatetime:       e.StartDatetime,
		DateDisplay:         e.DateDisplay,
		TimeDisplay:         e.TimeDisplay,
		IsVirtual:           e.IsVirtual,
		Location:            e.Location,
		MeetingLink:         e.MeetingLink,
		Price:               e.Price,
		Capacity:            e.Capacity,
		RegisteredCount:     e.RegisteredCount,
		Image:               utils.NilIfEmpty(e.Image),
		Description:         e.Description,
	}
}

// Request holds the writable fields. organization and registered_count are
// not here, so client values for them are never applied. The image arrives
// as a multipart file.
type Request struct {
	Title         string    `json:"title" form:"title" binding:"required,max=255"`
	Category      *int64    `json:"category" form:"category"`
	Instructor    *int64    `json:"instructor" form:"instructor"`
	StartDatetime time.Time `json:"start_datetime" form:"start_datetime"`
	DateDisplay   string    `json:"date_display" form:"date_display" binding:"required,max=50"`
	TimeDisplay   string    `json:"time_display" form:"time_display" binding:"required,max=50"`
	IsVirtual     bool      `json:"is_virtual" form:"is_virtual"`
	Location      *string   `json:"location" form:"location" binding:"omitempty,max=255"`
	MeetingLink   *string   `json:"meeting_link" form:"meeting_link" binding:"omitempty,max=200"`
	Price         int64     `json:"price" form:"price" binding:"min=0"`
	Capacity      *int      `json:"capacity" form:"capacity" binding:"omitempty,min=0"`
	Description   string    `json:"description" form:"description" binding:"required"`
}

func requestFrom(e *models.Event) Request {
	capacity := e.Capacity
	return Request{
		Title:         e.Title,
		Category:      utils.CopyPtr(e.CategoryID),
		Instructor:    utils.CopyPtr(e.InstructorID),
		StartDatetime: e.StartDatetime,
		DateDisplay:   e.DateDisplay,
		TimeDisplay:   e.TimeDisplay,
		IsVirtual:     e.IsVirtual,
		Location:      utils.CopyPtr(e.Location),
		MeetingLink:   utils.CopyPtr(e.MeetingLink),
		Price:         e.Price,
		Capacity:      &capacity,
		Description:   e.Description,
	}
}

// normalize cleans form input and returns a message for the first invalid field.
// A partial update keeps the stored capacity, so an explicit null is rejected there.
func (r *Request) normalize(partial bool) string {
	r.Title = strings.TrimSpace(r.Title)
	r.DateDisplay = strings.TrimSpace(r.DateDisplay)
	r.TimeDisplay = strings.TrimSpace(r.TimeDisplay)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = utils.NilIfZero(r.Category)
	r.Instructor = utils.NilIfZero(r.Instructor)
	if r.Location != nil {
		r.Location = utils.NilIfEmpty(strings.TrimSpace(*r.Location))
	}
	if r.MeetingLink != nil {
		r.MeetingLink = utils.NilIfEmpty(strings.TrimSpace(*r.MeetingLink))
	}
	switch {
	case r.Title == "":
		return "title: this field may not be blank"
	case r.DateDisplay == "":
		return "date_display: this field may not be blank"
	case r.TimeDisplay == "":
		return "time_display: this field may not be blank"
	case r.Description == "":
		return "description: this field may not be blank"
	}
	if r.StartDatetime.IsZero() {
		return "start_datetime: this field is required"
	}
	if r.MeetingLink != nil && !isURL(*r.MeetingLink) {
		return "meeting_link: enter a valid URL"
	}
	if r.Capacity == nil {
		if partial {
			return "capacity: this field may not be null"
		}
		capacity := models.DefaultEventCapacity
		r.Capacity = &capacity
	}
	return ""
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

func (r Request) apply(e *models.Event) {
	e.Title = r.Title
	e.CategoryID = r.Category
	e.InstructorID = r.Instructor
	e.StartDatetime = r.StartDatetime
	e.DateDisplay = r.DateDisplay
	e.TimeDisplay = r.TimeDisplay
	e.IsVirtual = r.IsVirtual
	e.Location = r.Location
	e.MeetingLink = r.MeetingLink
	e.Price = r.Price
	e.Capacity = *r.Capacity
	e.Description = r.Description
}
