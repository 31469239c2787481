package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/savi/placement-portal/internal/app/controllers"
	appRepos "github.com/savi/placement-portal/internal/app/repositories"
	appRoutes "github.com/savi/placement-portal/internal/app/routes"
	appServices "github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/config"
	"github.com/savi/placement-portal/internal/db"
	"github.com/savi/placement-portal/internal/middleware"
	pkgAuth "github.com/savi/placement-portal/internal/pkg/auth"
	"github.com/savi/placement-portal/internal/pkg/email"
	"github.com/savi/placement-portal/internal/pkg/filestorage"
	"github.com/savi/placement-portal/internal/pkg/helpers"
	"github.com/savi/placement-portal/internal/pkg/logger"
	"github.com/savi/placement-portal/internal/pkg/websocket"
	"github.com/savi/placement-portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	Controllers  *appRoutes.Controllers
	JWTService   *pkgAuth.JWTService
	RoleResolver middleware.RoleResolver
	FileStorage  *filestorage.LocalStorage
	Logger       zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to MongoDB, applies the collection validators and
// ensures the indexes the application relies on.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Mongo, error) {
	mongo, err := db.NewMongo(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mongo.SetupCollections(setupCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to set up collections")
		return nil, err
	}
	if err := mongo.EnsureIndexes(setupCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure indexes")
		return nil, err
	}

	lgr.Info().Str("database", cfg.Database.Name).Msg("Database ready")
	return mongo, nil
}

// BuildDependencies wires repositories, services and controllers together.
func BuildDependencies(cfg *config.Config, mongo *db.Mongo, lgr zerolog.Logger) (*Dependencies, error) {
	storage, err := filestorage.NewLocalStorage(cfg.Uploads.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	repos := appRepos.NewRepositories(mongo)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.EnsureDefaultAdmin(seedCtx, cfg, repos.AdminRepository, lgr); err != nil {
		lgr.Warn().Err(err).Msg("Failed to seed default admin")
	}

	mailer := email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	hub := websocket.NewHub(lgr)
	go hub.Run()

	notificationService := appServices.NewNotificationService(repos.NotificationRepository, repos.StudentRepository, hub, lgr)
	authService := appServices.NewAuthService(repos.StudentRepository, repos.FacultyRepository, repos.AdminRepository, jwtService, mailer, lgr)
	profileService := appServices.NewProfileService(repos.StudentRepository, storage, lgr)
	companyService := appServices.NewCompanyService(repos.CompanyRepository, repos.ApplicationRepository, repos.StudentRepository, notificationService, lgr)
	announcementService := appServices.NewAnnouncementService(repos.AnnouncementRepository, notificationService, storage, lgr)
	messageService := appServices.NewMessageService(repos.MessageRepository, repos.StudentRepository, notificationService, storage, lgr)
	dashboardService := appServices.NewDashboardService(repos.StudentRepository, repos.CompanyRepository, repos.ApplicationRepository, repos.MessageRepository, repos.InterviewRepository, repos.AnnouncementRepository, lgr)
	searchService := appServices.NewSearchService(repos.StudentRepository, repos.CompanyRepository, repos.AnnouncementRepository, lgr)
	recommendationService := appServices.NewRecommendationService(repos.StudentRepository, repos.CompanyRepository, repos.ApplicationRepository, lgr)
	interviewService := appServices.NewInterviewService(repos.InterviewRepository, repos.StudentRepository, notificationService, lgr)
	analyticsService := appServices.NewAnalyticsService(repos.StudentRepository, repos.CompanyRepository, repos.ApplicationRepository, lgr)
	adminService := appServices.NewAdminService(repos.StudentRepository, lgr)
	fileService := appServices.NewFileService(storage, lgr)

	controllers := &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		Profile:      appControllers.NewProfileController(profileService, lgr),
		Company:      appControllers.NewCompanyController(companyService, lgr),
		Announcement: appControllers.NewAnnouncementController(announcementService, lgr),
		Message:      appControllers.NewMessageController(messageService, lgr),
		Notification: appControllers.NewNotificationController(notificationService, lgr),
		Dashboard:    appControllers.NewDashboardController(dashboardService, lgr),
		Search:       appControllers.NewSearchController(searchService, recommendationService, lgr),
		Interview:    appControllers.NewInterviewController(interviewService, lgr),
		Admin:        appControllers.NewAdminController(adminService, analyticsService, lgr),
		File:         appControllers.NewFileController(fileService, lgr),
		Stream:       websocket.NewHandler(hub, lgr),
	}

	return &Dependencies{
		Repos:        repos,
		Controllers:  controllers,
		JWTService:   jwtService,
		RoleResolver: authService,
		FileStorage:  storage,
		Logger:       lgr,
	}, nil
}

// SetupRouter builds the gin engine with CORS, logging and all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, mongo *db.Mongo, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.MaxMultipartMemory = cfg.Uploads.MaxSizeBytes

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := cfg.CORSOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = origins
	}
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router, deps.Controllers, deps.JWTService, deps.RoleResolver, mongo)

	lgr.Info().Msg("Router configured")
	return router
}
