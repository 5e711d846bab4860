package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/learnflow/backend/docs"
	"github.com/learnflow/backend/internal/config"
	"github.com/learnflow/backend/internal/handlers"
	"github.com/learnflow/backend/internal/logger"
	"github.com/learnflow/backend/internal/middleware"
	"github.com/learnflow/backend/internal/repositories"
	"github.com/learnflow/backend/internal/store"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LearnFlow Content API
// @version 1.0
// @description API for courses, curriculum, blog posts, testimonials and users
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LearnFlow Content Service")

	// Connect to the record store
	client, cleanup, err := buildStore(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize record store", zap.Error(err))
	}
	defer cleanup()

	// Initialize repositories
	curriculumRepo := repositories.NewCurriculumRepository(client, logger.Logger)
	courseRepo := repositories.NewCourseRepository(client, curriculumRepo, logger.Logger, cfg.Store.CurriculumFanOutLimit)
	blogRepo := repositories.NewBlogRepository(client, logger.Logger)
	testimonialRepo := repositories.NewTestimonialRepository(client, logger.Logger)
	userRepo := repositories.NewUserRepository(client, logger.Logger)

	// Initialize handlers
	courseHandler := handlers.NewCoursesHandler(courseRepo, logger.Logger)
	blogHandler := handlers.NewBlogsHandler(blogRepo, logger.Logger)
	testimonialHandler := handlers.NewTestimonialsHandler(testimonialRepo, logger.Logger)
	userHandler := handlers.NewUsersHandler(userRepo, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Register routes
	courseHandler.RegisterRoutes(r)
	blogHandler.RegisterRoutes(r)
	testimonialHandler.RegisterRoutes(r)
	userHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// buildStore creates the configured record store client. The cleanup
// function closes whatever the driver holds open.
func buildStore(cfg *config.Config) (store.Client, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverApper:
		client := store.NewApperClient(cfg.Store.ApperBaseURL, cfg.Store.ApperProjectID, cfg.Store.ApperPublicKey)
		return client, func() {}, nil

	case config.StoreDriverMemory:
		return store.NewMemoryClient(), func() {}, nil

	case config.StoreDriverMySQL:
		db, err := connectDB(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store.NewMySQLClient(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "content_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
