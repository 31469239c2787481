package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	HandleAPIError(c, err)
	return recorder
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"wrapped not found", apperrors.NewNotFoundError("company not found"), http.StatusNotFound},
		{"duplicate application", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"duplicate registration", apperrors.ErrRegistrationNoAlreadyExists, http.StatusConflict},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", apperrors.NewForbiddenError("student search is restricted to admins"), http.StatusForbidden},
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"bad file type", apperrors.ErrFileTypeInvalid, http.StatusBadRequest},
		{"path traversal", apperrors.ErrInvalidFilePath, http.StatusBadRequest},
		{"unknown error", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := handleError(t, tt.err)
			if recorder.Code != tt.want {
				t.Errorf("status = %d, want %d", recorder.Code, tt.want)
			}

			var body map[string]string
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("response has no error field")
			}
		})
	}
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	recorder := handleError(t, errors.New("dial tcp 10.0.0.5:27017: connection refused"))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusInternalServerError)
	}
	if body := recorder.Body.String(); strings.Contains(body, "10.0.0.5") || strings.Contains(body, "dial tcp") {
		t.Errorf("internal error detail leaked to the client: %s", body)
	}
}
