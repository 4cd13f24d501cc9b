package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clabs.com/website/internal/config"
	"clabs.com/website/internal/middleware"
	"clabs.com/website/internal/web"
	"clabs.com/website/pkg/storage"
	"clabs.com/website/pkg/validator"

	categoryHttp "clabs.com/website/internal/modules/category/delivery/http"
	categoryRepo "clabs.com/website/internal/modules/category/repository"
	categoryService "clabs.com/website/internal/modules/category/service"

	contactHttp "clabs.com/website/internal/modules/contact/delivery/http"
	contactRepo "clabs.com/website/internal/modules/contact/repository"
	contactService "clabs.com/website/internal/modules/contact/service"

	ipHttp "clabs.com/website/internal/modules/ipprofile/delivery/http"
	ipRepo "clabs.com/website/internal/modules/ipprofile/repository"
	ipService "clabs.com/website/internal/modules/ipprofile/service"

	pageHttp "clabs.com/website/internal/modules/page/delivery/http"

	searchService "clabs.com/website/internal/modules/search/service"

	sessionHttp "clabs.com/website/internal/modules/session/delivery/http"
	sessionRepo "clabs.com/website/internal/modules/session/repository"
	sessionService "clabs.com/website/internal/modules/session/service"

	showcaseService "clabs.com/website/internal/modules/showcase/service"

	tutorialHttp "clabs.com/website/internal/modules/tutorial/delivery/http"
	tutorialRepo "clabs.com/website/internal/modules/tutorial/repository"
	tutorialService "clabs.com/website/internal/modules/tutorial/service"

	uploadHttp "clabs.com/website/internal/modules/upload/delivery/http"
	uploadRepo "clabs.com/website/internal/modules/upload/repository"
	uploadService "clabs.com/website/internal/modules/upload/service"

	viewService "clabs.com/website/internal/modules/view/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	engine   *gin.Engine
	logger   *zap.Logger
	views    viewService.ViewService
	searcher searchService.Searcher
}

// NewServer wires every module. redisClient may be nil, which turns off view
// buffering and rate limits.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, fixtures *showcaseService.Fixtures, logger *zap.Logger) (*Server, error) {
	if err := validator.Register(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	// Sessions
	verifier, err := newVerifier(cfg)
	if err != nil {
		return nil, err
	}
	sessionSvc := sessionService.NewAuthService(sessionRepo.NewSessionRepository(db), verifier, logger, sessionService.Options{
		TTL:            cfg.SessionTTL,
		LoginRateLimit: cfg.LoginRateLimit,
		Redis:          redisClient,
	})
	sessionHandler := sessionHttp.NewSessionHandler(sessionSvc, cfg.SessionTTL, cfg.CookieSecure)
	authMiddleware := middleware.NewAuthMiddleware(sessionSvc, logger)

	// Uploads
	uploadRepository := uploadRepo.NewUploadRepository(db)
	objectStorage, err := newObjectStorage(cfg, uploadRepository)
	if err != nil {
		return nil, err
	}
	uploadSvc := uploadService.NewUploadService(uploadRepository, objectStorage, logger)
	uploadHandler := uploadHttp.NewUploadHandler(uploadSvc)

	// IP profiles and showcase
	ipRepository := ipRepo.NewRepository(db)
	ipSvc := ipService.NewProfileService(ipRepository, logger)
	ipHandler := ipHttp.NewProfileHandler(ipSvc)
	showcaseSvc := showcaseService.NewShowcaseService(showcaseService.NewRepositoryReader(ipRepository), fixtures, logger)

	// Tutorials
	categorySvc := categoryService.NewCategoryService(categoryRepo.NewCategoryRepository(db))
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	tutorialRepository := tutorialRepo.NewTutorialRepository(db)
	searcher := newSearcher(cfg, tutorialRepository, logger)
	views := newViewService(cfg, redisClient, tutorialRepository, logger)
	tutorialSvc := tutorialService.NewTutorialService(tutorialRepository, categorySvc, searcher, views, logger)
	tutorialHandler := tutorialHttp.NewTutorialHandler(tutorialSvc)

	// Contact
	contactSvc := contactService.NewContactService(contactRepo.NewContactRepository(db), redisClient, logger)
	contactHandler := contactHttp.NewContactHandler(contactSvc)

	pageHandler := pageHttp.NewPageHandler(pageHttp.Deps{
		Profiles:        ipSvc,
		Showcase:        showcaseSvc,
		Tutorials:       tutorialSvc,
		Categories:      categorySvc,
		Uploads:         uploadSvc,
		Contacts:        contactSvc,
		FeaturedIPs:     fixtures.Slugs(),
		IsAuthenticated: authMiddleware.IsAuthenticated,
		Logger:          logger,
	})

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.SetHTMLTemplate(templates)
	router.StaticFS("/static", web.StaticFS())

	// Public pages
	router.GET("/", pageHandler.Home)
	router.GET("/about", pageHandler.Static("about.html", "关于我们"))
	router.GET("/services", pageHandler.Static("services.html", "服务"))
	router.GET("/cases", pageHandler.Static("cases.html", "案例"))
	router.GET("/contact", pageHandler.Static("contact.html", "联系我们"))
	router.GET("/work", pageHandler.Work)
	router.GET("/ip/:slug", pageHandler.IPShowcase)
	router.GET("/tutorials", pageHandler.Tutorials)
	router.GET("/tutorials/:category", pageHandler.TutorialCategory)
	router.GET("/tutorials/:category/:slug", pageHandler.TutorialArticle)

	// Admin pages
	adminPages := router.Group("/admin")
	adminPages.Use(authMiddleware.RequireAuth())
	{
		adminPages.GET("/login", pageHandler.AdminLogin)
		adminPages.GET("", pageHandler.Dashboard)
		adminPages.GET("/ip/manage", pageHandler.IPManage)
		adminPages.GET("/ip/add", pageHandler.IPAdd)
		adminPages.GET("/ip/edit/:id", pageHandler.IPEdit)
		adminPages.GET("/ip/analytics/:id", pageHandler.IPAnalytics)
		adminPages.GET("/ip/works/:id", pageHandler.IPWorks)
		adminPages.GET("/uploads", pageHandler.Uploads)
		adminPages.GET("/tutorials/manage", pageHandler.TutorialsManage)
		adminPages.GET("/tutorials/add", pageHandler.TutorialAdd)
		adminPages.GET("/tutorials/edit/:id", pageHandler.TutorialEdit)
	}

	api := router.Group("/api")

	// Public routes
	api.GET("/health", health)
	api.POST("/contact", contactHandler.Submit)
	api.POST("/upload/image", uploadHandler.UploadImage)
	api.GET("/image/:filename", uploadHandler.ServeImage)

	tutorials := api.Group("/tutorials")
	{
		tutorials.GET("/categories", categoryHandler.GetAllCategories)
		tutorials.GET("/articles/:category", tutorialHandler.ListByCategory)
		tutorials.GET("/article/:identifier", tutorialHandler.GetArticle)
		tutorials.GET("/search", tutorialHandler.Search)
	}

	// Admin API
	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAuth())
	{
		admin.POST("/login", sessionHandler.Login)
		admin.POST("/logout", sessionHandler.Logout)
		admin.GET("/session", sessionHandler.Status)

		ip := admin.Group("/ip")
		{
			ip.POST("/create", ipHandler.CreateProfile)
			ip.GET("", ipHandler.ListProfiles)
			ip.GET("/:id", ipHandler.GetProfile)
			ip.PUT("/:id", ipHandler.UpdateProfile)
			ip.DELETE("/:id", ipHandler.DeleteProfile)
			ip.GET("/:id/works", ipHandler.ListWorks)

			ip.POST("/platforms", ipHandler.SavePlatform)
			ip.PUT("/platforms/:id", ipHandler.UpdatePlatform)
			ip.DELETE("/platforms/:id", ipHandler.DeletePlatform)

			ip.POST("/works", ipHandler.CreateWork)
			ip.PUT("/works/:id", ipHandler.UpdateWork)
			ip.DELETE("/works/:id", ipHandler.DeleteWork)
		}

		tutorials := admin.Group("/tutorials")
		{
			tutorials.POST("/create", tutorialHandler.CreateTutorial)
			tutorials.GET("", tutorialHandler.ListTutorials)
			tutorials.GET("/:id", tutorialHandler.GetTutorial)
			tutorials.PUT("/:id", tutorialHandler.UpdateTutorial)
			tutorials.DELETE("/delete/:id", tutorialHandler.DeleteTutorial)

			articles := tutorials.Group("/articles")
			articles.GET("", tutorialHandler.ListTutorials)
			articles.POST("", tutorialHandler.CreateTutorial)
			articles.GET("/:id", tutorialHandler.GetTutorial)
			articles.PUT("/:id", tutorialHandler.UpdateTutorial)
			articles.DELETE("/:id", tutorialHandler.DeleteTutorial)
		}

		admin.DELETE("/uploads/delete/:id", uploadHandler.DeleteUpload)
	}

	return &Server{
		engine:   router,
		logger:   logger,
		views:    views,
		searcher: searcher,
	}, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests and the
// view sync worker.
func (s *Server) Run(ctx context.Context, addr string) error {
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		s.views.StartViewSyncWorker(workerCtx)
	}()

	if err := s.searcher.Reindex(ctx); err != nil {
		s.logger.Warn("search reindex failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("shutdown: %w", err)
		}
	}

	stopWorker()
	<-workerDone
	return serveErr
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func newVerifier(cfg *config.Config) (sessionService.Verifier, error) {
	if cfg.AdminPasswordHash != "" {
		return sessionService.NewBcryptVerifier(cfg.AdminUsername, cfg.AdminPasswordHash)
	}
	return sessionService.NewPasswordVerifier(cfg.AdminUsername, cfg.AdminPassword)
}

func newObjectStorage(cfg *config.Config, repo uploadRepo.UploadRepository) (storage.ObjectStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		s, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryUploadFolder, uploadRepo.NewIndex(repo))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cloudinary storage: %w", err)
		}
		return s, nil
	}
	return uploadRepo.NewDatabaseStorage(repo), nil
}

func newSearcher(cfg *config.Config, repo tutorialRepo.TutorialRepository, logger *zap.Logger) searchService.Searcher {
	if cfg.MeiliSearchHost == "" {
		return searchService.NewDatabaseSearcher(repo)
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	return searchService.NewMeiliSearcher(meiliClient, repo, logger)
}

func newViewService(cfg *config.Config, redisClient *redis.Client, repo tutorialRepo.TutorialRepository, logger *zap.Logger) viewService.ViewService {
	if redisClient == nil {
		return viewService.NewDirectViewService(repo)
	}
	return viewService.NewViewService(redisClient, repo, cfg.ViewSyncInterval, logger)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", sessionService.HeaderName},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if allowedOrigins == "" || allowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(allowedOrigins, ",")
		corsCfg.AllowCredentials = true
	}

	router.Use(cors.New(corsCfg))
}
