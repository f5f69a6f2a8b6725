package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/config"
	"github.com/lshigami/lawdesk/database"
	_ "github.com/lshigami/lawdesk/docs" // Swagger docs
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	adminctrl "github.com/lshigami/lawdesk/internal/controller/admin"
	userctrl "github.com/lshigami/lawdesk/internal/controller/user"
	"github.com/lshigami/lawdesk/internal/logger"
	"github.com/lshigami/lawdesk/internal/middleware"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/lshigami/lawdesk/internal/storage"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Lawdesk API
// @version 1.0
// @description Law-education portal: notes, bare acts and multiple-choice tests with scoring and results.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()
	apperror.InitValidators()

	app := fx.New(
		// Core
		fx.Provide(
			NewAppConfig,
			database.NewDatabase,
			NewPracticeCatalog,
			storage.NewFileStore,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewUserRepository,
			repository.NewDocumentRepository,
			repository.NewSettingRepository,
			repository.NewAnalyticsRepository,
		),

		// Services
		fx.Provide(
			service.NewAuthService,
			service.NewUserService,
			service.NewTestDeliveryService,
			service.NewTestSubmissionService,
			service.NewResultService,
			service.NewCertificateService,
			service.NewAdminTestService,
			service.NewGeminiLLMService,
			service.NewQuestionService,
			service.NewDocumentService,
			service.NewAnalyticsService,
			service.NewSiteService,
		),

		// Controllers
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewUserTestController,
			userctrl.NewNoteController,
			userctrl.NewBareActController,
			userctrl.NewSiteController,
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminUserController,
			adminctrl.NewAdminDocumentController,
			adminctrl.NewAnalyticsController,
			adminctrl.NewSettingsController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedOwner),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}

// NewAppConfig loads the config and switches logging over to it.
func NewAppConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if err := logger.Configure(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewPracticeCatalog(cfg *config.Config) (*practice.Catalog, error) {
	return practice.Load(cfg.PracticePath)
}

func NewGinEngine(cfg *config.Config, authService service.AuthService, site service.SiteService) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.MaintenanceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecureHeaders(gin.Mode() == gin.DebugMode))
	r.Use(middleware.Sessions(cfg))
	r.Use(middleware.PrincipalLoader(authService))
	r.Use(middleware.MaintenanceBanner(site))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	testCtrl *userctrl.UserTestController,
	noteCtrl *userctrl.NoteController,
	bareActCtrl *userctrl.BareActController,
	siteCtrl *userctrl.SiteController,
	adminTestCtrl *adminctrl.AdminTestController,
	adminUserCtrl *adminctrl.AdminUserController,
	adminDocCtrl *adminctrl.AdminDocumentController,
	analyticsCtrl *adminctrl.AnalyticsController,
	settingsCtrl *adminctrl.SettingsController,
) {
	api := router.Group("/api/v1")

	limiter := middleware.AuthRateLimiter(cfg.Auth.RateLimitPerMinute)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limiter, authCtrl.Register)
		authGroup.POST("/login", limiter, authCtrl.Login)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.GET("/me", middleware.AuthRequired(), authCtrl.Me)
	}

	api.GET("/site/status", siteCtrl.Status)

	// Signed-in users
	member := api.Group("", middleware.AuthRequired())
	{
		member.GET("/tests", testCtrl.ListTests)
		member.GET("/tests/:id", testCtrl.GetTest)
		member.POST("/tests/:id", testCtrl.TestAction)
		member.POST("/tests/:id/submit", testCtrl.SubmitAttempt)
		member.GET("/tests/:id/results", testCtrl.GetResults)
		member.GET("/tests/:id/results/certificate", testCtrl.GetCertificate)

		member.GET("/notes", noteCtrl.List)
		member.GET("/notes/:id", noteCtrl.Get)
		member.GET("/notes/:id/file", noteCtrl.Download)
		member.GET("/bare-acts", bareActCtrl.List)
		member.GET("/bare-acts/:id", bareActCtrl.Get)
		member.GET("/bare-acts/:id/file", bareActCtrl.Download)
	}

	// Staff
	adminGroup := api.Group("/admin", middleware.RequireRole(auth.Staff))
	{
		adminGroup.GET("/tests", adminTestCtrl.ListTests)
		adminGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminGroup.GET("/tests/:id", adminTestCtrl.GetTest)
		adminGroup.PUT("/tests/:id", adminTestCtrl.UpdateTest)
		adminGroup.PATCH("/tests/:id/publish", adminTestCtrl.SetPublished)
		adminGroup.DELETE("/tests/:id", adminTestCtrl.DeleteTest)
		adminGroup.POST("/tests/:id/questions", adminTestCtrl.AddQuestion)
		adminGroup.PUT("/questions/:id", adminTestCtrl.UpdateQuestion)
		adminGroup.DELETE("/questions/:id", adminTestCtrl.DeleteQuestion)
		adminGroup.POST("/questions/:id/explanation", adminTestCtrl.DraftExplanation)

		adminGroup.POST("/notes", adminDocCtrl.Upload(model.KindNote))
		adminGroup.PUT("/notes/:id", adminDocCtrl.Update(model.KindNote))
		adminGroup.DELETE("/notes/:id", adminDocCtrl.Delete(model.KindNote))
		adminGroup.POST("/bare-acts", adminDocCtrl.Upload(model.KindBareAct))
		adminGroup.PUT("/bare-acts/:id", adminDocCtrl.Update(model.KindBareAct))
		adminGroup.DELETE("/bare-acts/:id", adminDocCtrl.Delete(model.KindBareAct))

		adminGroup.GET("/users", adminUserCtrl.ListUsers)
		adminGroup.GET("/analytics/overview", analyticsCtrl.Overview)
		adminGroup.GET("/analytics/tests", analyticsCtrl.TestStats)
	}

	// Owner only
	ownerGroup := api.Group("/admin", middleware.RequireRole(auth.Owners))
	{
		ownerGroup.PATCH("/users/:id/role", adminUserCtrl.ChangeRole)
		ownerGroup.DELETE("/users/:id", adminUserCtrl.DeleteUser)
		ownerGroup.PUT("/site/maintenance", settingsCtrl.SetMaintenance)
	}

	router.MaxMultipartMemory = 8 << 20

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Lawdesk API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Document{},
		&model.SiteSetting{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to auto-migrate database")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedOwner(lc fx.Lifecycle, cfg *config.Config, authService service.AuthService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return authService.SeedOwner(ctx, cfg.Auth.SeedOwnerEmail, cfg.Auth.SeedOwnerPassword)
		},
	})
}
