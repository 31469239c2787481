package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savi/placement-portal/internal/app/controllers"
	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/db"
	"github.com/savi/placement-portal/internal/middleware"
	"github.com/savi/placement-portal/internal/pkg/auth"
	"github.com/savi/placement-portal/internal/pkg/websocket"
)

// Controllers groups every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Company      *controllers.CompanyController
	Announcement *controllers.AnnouncementController
	Message      *controllers.MessageController
	Notification *controllers.NotificationController
	Dashboard    *controllers.DashboardController
	Search       *controllers.SearchController
	Interview    *controllers.InterviewController
	Admin        *controllers.AdminController
	File         *controllers.FileController
	Stream       *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *Controllers, jwtService *auth.JWTService, roleResolver middleware.RoleResolver, mongo *db.Mongo) {
	// Liveness probe, intentionally unauthenticated and content-free.
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", ctrl.Auth.Signup)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.POST("/admin/login", ctrl.Auth.AdminLogin)
		authGroup.POST("/reset-password", ctrl.Auth.ResetPassword)
		// Tokens are stateless; logout is client-side and acknowledged only.
		authGroup.POST("/logout", ctrl.Auth.Logout)
		authGroup.GET("/check-auth", middleware.JWTAuth(jwtService, roleResolver), ctrl.Auth.CheckAuth)
	}

	// Shareable portfolio pages need no token.
	router.GET("/api/portfolio/public/:registration_no", ctrl.Profile.GetPublicPortfolio)

	// --- Authenticated routes ---
	api := router.Group("/api")
	api.Use(middleware.JWTAuth(jwtService, roleResolver))

	api.GET("/dashboard", ctrl.Dashboard.Get)
	api.GET("/dashboard/stats", ctrl.Dashboard.Stats)
	api.GET("/dashboard/upcoming-deadlines", ctrl.Dashboard.UpcomingDeadlines)
	api.GET("/search", ctrl.Search.Search)
	api.GET("/search/companies", ctrl.Search.SearchScope("companies"))
	api.GET("/search/students", ctrl.Search.SearchScope("students"))
	api.GET("/search/announcements", ctrl.Search.SearchScope("announcements"))
	api.GET("/search/global", ctrl.Search.SearchScope("global"))
	api.GET("/uploads/*filepath", ctrl.File.Download)

	student := api.Group("")
	student.Use(middleware.RolesRequired(models.RoleStudent))
	{
		student.GET("/profile", ctrl.Profile.GetProfile)
		student.PUT("/profile", ctrl.Profile.UpdateProfile)
		student.PUT("/profile/skills", ctrl.Profile.UpdateSkills)
		student.POST("/profile/experience", ctrl.Profile.AddExperience)
		student.PUT("/profile/experience/:index", ctrl.Profile.UpdateExperience)
		student.DELETE("/profile/experience/:index", ctrl.Profile.DeleteExperience)
		student.POST("/profile/projects", ctrl.Profile.AddProject)
		student.POST("/profile/certifications", ctrl.Profile.AddCertification)
		student.POST("/profile/certifications/:index/file", ctrl.Profile.UploadCertificationFile)
		student.GET("/profile/certifications/:index/file", ctrl.Profile.DownloadCertification)
		student.POST("/profile/cv", ctrl.Profile.UploadCV)
		student.GET("/profile/cv", ctrl.Profile.DownloadCV)
		student.GET("/portfolio", ctrl.Profile.GetPortfolio)

		student.POST("/company/:id/apply", ctrl.Company.Apply)
		student.GET("/company/:id/status", ctrl.Company.CompanyApplicationStatus)
		student.GET("/applications", ctrl.Company.MyApplications)
		student.GET("/applications/:id/status", ctrl.Company.ApplicationStatus)
		student.GET("/recommendations", ctrl.Search.Recommendations)
		student.GET("/recommendations/similar-companies/:id", ctrl.Search.SimilarCompanies)
		student.GET("/recommendations/trending", ctrl.Search.Trending)
		student.GET("/interviews", ctrl.Interview.Mine)

		student.POST("/messages", ctrl.Message.Send)
		student.GET("/messages", ctrl.Message.List)
		student.GET("/messages/inbox", ctrl.Message.Inbox)
		student.GET("/messages/sent", ctrl.Message.Sent)
		student.GET("/messages/:id", ctrl.Message.Get)
		student.PUT("/messages/:id/read", ctrl.Message.MarkRead)
		student.DELETE("/messages/:id", ctrl.Message.Delete)
	}

	// Listings shared by every authenticated role.
	api.GET("/company", ctrl.Company.List)
	api.GET("/company/:id", ctrl.Company.Get)
	api.GET("/announcements", ctrl.Announcement.List)
	api.GET("/announcements/:id", ctrl.Announcement.Get)
	api.GET("/announcements/:id/attachment", ctrl.Announcement.DownloadAttachment)

	api.GET("/notifications", ctrl.Notification.List)
	api.GET("/notifications/unread-count", ctrl.Notification.UnreadCount)
	api.GET("/notifications/stream", ctrl.Stream.HandleStream)
	api.GET("/notifications/:id", ctrl.Notification.Get)
	api.PUT("/notifications/:id/read", ctrl.Notification.MarkRead)
	api.PUT("/notifications/read-all", ctrl.Notification.MarkAllRead)

	admin := api.Group("/admin")
	admin.Use(middleware.RolesRequired(models.RoleAdmin))
	{
		admin.POST("/company", ctrl.Company.Create)
		admin.PUT("/company/:id", ctrl.Company.Update)
		admin.DELETE("/company/:id", ctrl.Company.Deactivate)
		admin.GET("/company/:id/applications", ctrl.Company.CompanyApplications)
		admin.GET("/applications", ctrl.Company.ListApplications)
		admin.PUT("/applications/:id/status", ctrl.Company.UpdateApplicationStatus)

		admin.POST("/announcements", ctrl.Announcement.Create)
		admin.DELETE("/announcements/:id", ctrl.Announcement.Delete)

		admin.GET("/students", ctrl.Admin.ListStudents)
		admin.GET("/students/:registration_no", ctrl.Admin.GetStudent)
		admin.PUT("/students/:registration_no", ctrl.Admin.UpdateStudentRecord)

		admin.POST("/interviews", ctrl.Interview.Schedule)
		admin.GET("/interviews", ctrl.Interview.List)
		admin.PUT("/interviews/:id/status", ctrl.Interview.UpdateStatus)
		admin.DELETE("/interviews/:id", ctrl.Interview.Delete)

		admin.GET("/analytics/overview", ctrl.Admin.AnalyticsOverview)
		admin.GET("/analytics/timeline", ctrl.Admin.AnalyticsTimeline)
		admin.GET("/analytics/popular-companies", ctrl.Admin.AnalyticsPopularCompanies)

		// Deep health check with a live database round trip. Admin only so
		// the probe cannot be used to map the deployment.
		admin.GET("/health", func(c *gin.Context) {
			if err := mongo.Ping(c.Request.Context()); err != nil {
				middleware.HandleAPIError(c, err)
				return
			}
			collections, err := mongo.CollectionNames(c.Request.Context())
			if err != nil {
				middleware.HandleAPIError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":      "ok",
				"database":    "reachable",
				"collections": collections,
			})
		})
	}
}
