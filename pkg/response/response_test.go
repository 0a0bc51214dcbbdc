package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

func TestErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"not found", fmt.Errorf("get event: %w", database.ErrNotFound), http.StatusNotFound, CodeNotFound, ""},
		{"conflict", &database.ConflictError{Field: "slug"}, http.StatusConflict, CodeUnique, "slug"},
		{"protected", database.ErrProtected, http.StatusConflict, CodeProtectedReference, ""},
		{"invalid reference", database.ErrInvalidReference, http.StatusBadRequest, CodeInvalidReference, ""},
		{"check", database.ErrCheckViolation, http.StatusBadRequest, CodeValidation, ""},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, zap.NewNop(), tt.err)

			require.Equal(t, tt.status, w.Code)
			var body Body
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.Equal(t, tt.code, body.Code)
			require.Equal(t, tt.field, body.Field)
		})
	}
}
