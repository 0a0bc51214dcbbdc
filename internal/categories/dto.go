package categories

import (
	"strings"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
)

// Response is the wire shape of a category, also used for category_details.
type Response struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Organization *int64 `json:"organization"`
}

// NewResponse maps a model to its wire shape. nil stays nil.
func NewResponse(cat *models.Category) *Response {
	if cat == nil {
		return nil
	}
	return &Response{ID: cat.ID, Title: cat.Title, Organization: cat.OrganizationID}
}

// Request holds the writable fields.
type Request struct {
	Title string `json:"title" form:"title" binding:"required,max=100"`
}

// normalize trims input and returns a message when the title is blank.
func (r *Request) normalize() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title: this field may not be blank"
	}
	return ""
}

func (r Request) apply(cat *models.Category) {
	cat.Title = r.Title
}
