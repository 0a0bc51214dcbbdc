package users

import (
	"strings"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

// Response is the wire shape of a user. The password hash is never serialized.
type Response struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	IsOrganizer  bool   `json:"is_organizer"`
	Organization *int64 `json:"organization"`
}

// NewResponse maps a model to its wire shape.
func NewResponse(u *models.User) *Response {
	return &Response{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Email:        u.Email,
		IsOrganizer:  u.IsOrganizer,
		Organization: u.OrganizationID,
	}
}

// Request holds the writable fields. Password is write-only and optional on update.
type Request struct {
	Username     string `json:"username" form:"username" binding:"required,max=150"`
	Password     string `json:"password" form:"password" binding:"omitempty,min=8,max=128"`
	FirstName    string `json:"first_name" form:"first_name" binding:"max=150"`
	LastName     string `json:"last_name" form:"last_name" binding:"max=150"`
	Phone        string `json:"phone" form:"phone" binding:"required,max=15"`
	Email        string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	IsOrganizer  bool   `json:"is_organizer" form:"is_organizer"`
	Organization *int64 `json:"organization" form:"organization"`
}

func requestFrom(u *models.User) Request {
	return Request{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Email:        u.Email,
		IsOrganizer:  u.IsOrganizer,
		Organization: utils.CopyPtr(u.OrganizationID),
	}
}

// normalize trims input and returns a message for the first blank required field.
func (r *Request) normalize() string {
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.Organization = utils.NilIfZero(r.Organization)
	switch {
	case r.Username == "":
		return "username: this field may not be blank"
	case r.Phone == "":
		return "phone: this field may not be blank"
	}
	return ""
}

func (r Request) apply(u *models.User) {
	u.Username = r.Username
	u.FirstName = r.FirstName
	u.LastName = r.LastName
	u.Phone = r.Phone
	u.Email = r.Email
	u.IsOrganizer = r.IsOrganizer
	u.OrganizationID = r.Organization
}
