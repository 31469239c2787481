package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/controllers"
	"github.com/savi/placement-portal/internal/pkg/auth"
	"github.com/savi/placement-portal/internal/pkg/websocket"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	nop := zerolog.Nop()
	ctrl := &Controllers{
		Auth:         controllers.NewAuthController(nil, nop),
		Profile:      controllers.NewProfileController(nil, nop),
		Company:      controllers.NewCompanyController(nil, nop),
		Announcement: controllers.NewAnnouncementController(nil, nop),
		Message:      controllers.NewMessageController(nil, nop),
		Notification: controllers.NewNotificationController(nil, nop),
		Dashboard:    controllers.NewDashboardController(nil, nop),
		Search:       controllers.NewSearchController(nil, nil, nop),
		Interview:    controllers.NewInterviewController(nil, nop),
		Admin:        controllers.NewAdminController(nil, nil, nop),
		File:         controllers.NewFileController(nil, nop),
		Stream:       websocket.NewHandler(nil, nop),
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "routes-test"})

	SetupRouter(router, ctrl, jwtService, nil, nil)

	routes := map[string]bool{}
	for _, route := range router.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestSetupRouterRegistersWireSurface(t *testing.T) {
	routes := registeredRoutes(t)

	want := []string{
		"POST /auth/signup",
		"POST /auth/login",
		"GET /auth/check-auth",
		"GET /api/company",
		"GET /api/company/:id",
		"POST /api/company/:id/apply",
		"GET /api/company/:id/status",
		"GET /api/applications/:id/status",
		"GET /api/search",
		"GET /api/search/companies",
		"GET /api/search/students",
		"GET /api/search/announcements",
		"GET /api/search/global",
		"GET /api/notifications/stream",
		"GET /api/admin/analytics/overview",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route %q is not registered", route)
		}
	}
}
