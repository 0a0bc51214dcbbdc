package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
)

// MsgOrganizationRequired is returned when a caller without an organization creates a tenant-scoped resource.
const MsgOrganizationRequired = "account not linked to an organization; ask an administrator to assign your account to an organization first"

// RequireOrganization runs before tenant-scoped creates. It stores the caller's
// organization id in the context; anonymous and organization-less callers get
// a validation error.
func RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.HasOrganization() {
			response.Fail(c, http.StatusBadRequest, response.CodeOrganizationRequired, MsgOrganizationRequired)
			c.Abort()
			return
		}
		c.Set(ContextOrganizationID, *user.OrganizationID)
		c.Next()
	}
}

// OrganizationID returns the id stored by RequireOrganization.
func OrganizationID(c *gin.Context) int64 {
	return c.GetInt64(ContextOrganizationID)
}
