package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/savi/placement-portal/internal/pkg/auth"
)

func testRouter(jwtService *auth.JWTService, resolver RoleResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(jwtService, resolver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"identity": Identity(c), "role": Role(c)})
	})
	router.GET("/admin", JWTAuth(jwtService, resolver), RolesRequired("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

type staticResolver struct {
	role string
	err  error
}

func (r staticResolver) ResolveRole(ctx context.Context, identity string) (string, error) {
	return r.role, r.err
}

func newJWTService(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "placement-portal-test",
	})
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	router := testRouter(jwtService, nil)

	token, _, err := jwtService.GenerateToken("123456789", "student")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want %d", recorder.Code, http.StatusOK)
	}

	for _, header := range []string{"", "Basic abc", "Bearer not-a-token"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			request.Header.Set("Authorization", header)
		}
		router.ServeHTTP(recorder, request)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("header %q status = %d, want %d", header, recorder.Code, http.StatusUnauthorized)
		}
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expired := newJWTService(-time.Minute)
	token, _, err := expired.GenerateToken("123456789", "student")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	router := testRouter(newJWTService(time.Hour), nil)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expired token status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuthRoleFallback(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	token, _, err := jwtService.GenerateToken("123456789", "")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	cases := []struct {
		name     string
		resolver RoleResolver
		want     int
	}{
		{"resolver supplies the role", staticResolver{role: "admin"}, http.StatusOK},
		{"resolver fails", staticResolver{err: errors.New("unknown identity")}, http.StatusUnauthorized},
		{"no resolver configured", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(jwtService, tc.resolver)
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("GET", "/admin", nil)
			request.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(recorder, request)
			if recorder.Code != tc.want {
				t.Errorf("status = %d, want %d", recorder.Code, tc.want)
			}
		})
	}
}

func TestRolesRequired(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	router := testRouter(jwtService, nil)

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"student", http.StatusForbidden},
		{"faculty", http.StatusForbidden},
	}
	for _, tc := range cases {
		token, _, err := jwtService.GenerateToken("someone", tc.role)
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/admin", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, request)
		if recorder.Code != tc.want {
			t.Errorf("role %q status = %d, want %d", tc.role, recorder.Code, tc.want)
		}
	}
}
