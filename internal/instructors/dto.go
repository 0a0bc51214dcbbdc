package instructors

import (
	"strings"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Response is the wire shape of an instructor, also used for instructor_details.
type Response struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Expertise    string  `json:"expertise"`
	Bio          string  `json:"bio"`
	Image        *string `json:"image"`
	CoursesCount int     `json:"courses_count"`
	Organization int64   `json:"organization"`
}

// NewResponse maps a model to its wire shape. nil stays nil.
func NewResponse(in *models.Instructor) *Response {
	if in == nil {
		return nil
	}
	return &Response{
		ID:           in.ID,
		Name:         in.Name,
		Expertise:    in.Expertise,
		Bio:          in.Bio,
		Image:        utils.NilIfEmpty(in.Image),
		CoursesCount: in.CoursesCount,
		Organization: in.OrganizationID,
	}
}

// Request holds the writable fields. There is no organization field: it comes from the caller.
type Request struct {
	Name         string `json:"name" form:"name" binding:"required,max=255"`
	Expertise    string `json:"expertise" form:"expertise" binding:"required,max=255"`
	Bio          string `json:"bio" form:"bio" binding:"required"`
	CoursesCount int    `json:"courses_count" form:"courses_count" binding:"min=0"`
}

func requestFrom(in *models.Instructor) Request {
	return Request{
		Name:         in.Name,
		Expertise:    in.Expertise,
		Bio:          in.Bio,
		CoursesCount: in.CoursesCount,
	}
}

// normalize trims input and returns a message for the first blank required field.
func (r *Request) normalize() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Expertise = strings.TrimSpace(r.Expertise)
	r.Bio = strings.TrimSpace(r.Bio)
	switch {
	case r.Name == "":
		return "name: this field may not be blank"
	case r.Expertise == "":
		return "expertise: this field may not be blank"
	case r.Bio == "":
		return "bio: this field may not be blank"
	}
	return ""
}

func (r Request) apply(in *models.Instructor) {
	in.Name = r.Name
	in.Expertise = r.Expertise
	in.Bio = r.Bio
	in.CoursesCount = r.CoursesCount
}
