package organizations

import (
	"regexp"
	"strings"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Slug must be lowercase letters, digits, hyphens or underscores, up to 50 chars.
var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,49}$`)

// Response is the wire shape of an organization. It is also embedded as
// organization_details in events.
type Response struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Slug       string            `json:"slug"`
	Logo       *string           `json:"logo"`
	ThemeColor models.ThemeColor `json:"theme_color"`
	FontFamily string            `json:"font_family"`
}

// NewResponse maps a model to its wire shape. nil stays nil.
func NewResponse(org *models.Organization) *Response {
	if org == nil {
		return nil
	}
	return &Response{
		ID:         org.ID,
		Name:       org.Name,
		Slug:       org.Slug,
		Logo:       utils.NilIfEmpty(org.Logo),
		ThemeColor: org.ThemeColor,
		FontFamily: org.FontFamily,
	}
}

// Request holds the writable fields. The logo arrives as a multipart file.
type Request struct {
	Name       string            `json:"name" form:"name" binding:"required,max=255"`
	Slug       string            `json:"slug" form:"slug" binding:"required,max=50"`
	ThemeColor models.ThemeColor `json:"theme_color" form:"theme_color"`
	FontFamily string            `json:"font_family" form:"font_family" binding:"max=50"`
}

func requestFrom(org *models.Organization) Request {
	return Request{
		Name:       org.Name,
		Slug:       org.Slug,
		ThemeColor: org.ThemeColor,
		FontFamily: org.FontFamily,
	}
}

// normalize trims input, fills defaults and returns a message for the first invalid field.
func (r *Request) normalize() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.FontFamily = strings.TrimSpace(r.FontFamily)
	if r.Name == "" {
		return "name: this field may not be blank"
	}
	if !slugRegex.MatchString(r.Slug) {
		return "slug: use up to 50 lowercase letters, numbers, hyphens or underscores"
	}
	if r.ThemeColor == "" {
		r.ThemeColor = models.ThemeIndigo
	}
	if !r.ThemeColor.Valid() {
		return "theme_color: must be one of indigo, emerald, rose, amber, blue"
	}
	if r.FontFamily == "" {
		r.FontFamily = models.DefaultFontFamily
	}
	return ""
}

func (r Request) apply(org *models.Organization) {
	org.Name = r.Name
	org.Slug = r.Slug
	org.ThemeColor = r.ThemeColor
	org.FontFamily = r.FontFamily
}
