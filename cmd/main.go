package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/eslamalii/user-management-api/internal/handlers"
	"github.com/eslamalii/user-management-api/internal/jwt"
	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/middlewares"
	"github.com/eslamalii/user-management-api/internal/repositories"
	"github.com/eslamalii/user-management-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds the application configuration read from the environment.
type config struct {
	appHost  string
	appPort  string
	logLevel string
	storage  string // "postgres" or "none"

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int

	kafkaBrokers string // comma-separated, empty disables publishing
	kafkaTopic   string

	jwtSecretKey  string
	jwtExpSecond  int
	resetTokenExp int
	statsCacheExp int
}

// @title User Management API
// @version 1.0.0
// @description REST API for user registration, authentication, password reset and admin statistics
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, logging, and JWT configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getEnvInt := func(key string, defaultValue int) (int, error) {
		val, ok := os.LookupEnv(key)
		if !ok || val == "" {
			return defaultValue, nil
		}
		return strconv.Atoi(val)
	}

	cfg := &config{
		appHost:       getEnv("APP_HOST", "localhost"),
		appPort:       getEnv("APP_PORT", "8080"),
		logLevel:      getEnv("APP_LOG_LEVEL", "info"),
		storage:       getEnv("APP_STORAGE", "postgres"),
		pgHost:        getEnv("POSTGRES_HOST", "localhost"),
		pgUser:        getEnv("POSTGRES_USER", "user"),
		pgPassword:    getEnv("POSTGRES_PASSWORD", "password"),
		pgDB:          getEnv("POSTGRES_DB", "user_management"),
		redisHost:     getEnv("REDIS_HOST", "localhost"),
		redisPassword: getEnv("REDIS_PASSWORD", ""),
		kafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
		kafkaTopic:    getEnv("KAFKA_TOPIC", "user-events"),
		jwtSecretKey:  getEnv("JWT_SECRET_KEY", "my_super_secret_key"),
	}

	var err error
	if cfg.pgPort, err = getEnvInt("POSTGRES_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.pgMaxOpenConns, err = getEnvInt("POSTGRES_MAX_OPEN_CONNS", 16); err != nil {
		return nil, err
	}
	if cfg.pgMaxIdleConns, err = getEnvInt("POSTGRES_MAX_IDLE_CONNS", 8); err != nil {
		return nil, err
	}
	if cfg.redisPort, err = getEnvInt("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	if cfg.redisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.redisPoolSize, err = getEnvInt("REDIS_POOL_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.redisMinIdleConns, err = getEnvInt("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return nil, err
	}
	if cfg.jwtExpSecond, err = getEnvInt("JWT_EXP_SECOND", 3600); err != nil {
		return nil, err
	}
	if cfg.resetTokenExp, err = getEnvInt("RESET_TOKEN_EXP_SECOND", 900); err != nil {
		return nil, err
	}
	if cfg.statsCacheExp, err = getEnvInt("STATS_CACHE_EXP_SECOND", 60); err != nil {
		return nil, err
	}

	return cfg, nil
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	log, err := logger.New(cfg.logLevel)
	if err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL, unless running storeless
	var db *sqlx.DB
	if cfg.storage != "none" {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
		log.Infof("Connecting to PostgreSQL at %s:%d", cfg.pgHost, cfg.pgPort)

		db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			log.Fatal("PostgreSQL connection error:", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.pgMaxOpenConns)
		db.SetMaxIdleConns(cfg.pgMaxIdleConns)
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("PostgreSQL ping failed:", err)
		}
	} else {
		log.Warn("Running with the inert store: nothing will be persisted")
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for user lifecycle events, optional
	var kafkaWriter services.KafkaWriter
	if cfg.kafkaBrokers != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.kafkaBrokers, ",")...),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
		log.Infof("Kafka publishing enabled on topic %s", cfg.kafkaTopic)
	}

	// Initialize JWT service
	tokener := jwt.New(cfg.jwtSecretKey,
		time.Duration(cfg.jwtExpSecond)*time.Second,
		time.Duration(cfg.resetTokenExp)*time.Second)

	// Initialize repositories; the inert pair stands in when storeless
	var (
		userReadRepo  services.UserReader
		userWriteRepo services.UserWriter
	)
	if db != nil {
		userReadRepo = repositories.NewUserReadRepository(db)
		userWriteRepo = repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	} else {
		userReadRepo = repositories.NewNoopUserReadRepository()
		userWriteRepo = repositories.NewNoopUserWriteRepository()
	}
	statsCache := repositories.NewStatsCacheRepository(rdb, time.Duration(cfg.statsCacheExp)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokener, kafkaWriter)
	resetService := services.NewPasswordResetService(userReadRepo, userWriteRepo, tokener, kafkaWriter)
	userService := services.NewUserService(userReadRepo, userWriteRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	// Public routes
	r.Post("/auth/register", handlers.NewRegisterHandler(authService))
	r.Post("/auth/login", handlers.NewLoginHandler(authService))
	r.Get("/auth/verify", handlers.NewVerifyHandler(authService))
	r.Post("/password-reset/request", handlers.NewResetRequestHandler(resetService))
	r.Post("/password-reset/reset", handlers.NewResetPasswordHandler(resetService))

	// Protected profile routes
	authMiddleware := middlewares.AuthMiddleware(tokener)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/users/{id}", handlers.NewGetUserHandler(userService))

		// Mutations run in a per-request transaction
		r.Group(func(r chi.Router) {
			if db != nil {
				r.Use(middlewares.TxMiddleware(db))
			}
			r.Put("/users/{id}", handlers.NewUpdateUserHandler(userService))
			r.Delete("/users/{id}", handlers.NewDeleteUserHandler(userService))
		})
	})

	// Admin routes need the real store
	if db != nil {
		adminService := services.NewAdminService(repositories.NewAdminRepository(db), statsCache)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middlewares.AdminOnly())
			r.Get("/admin/users", handlers.NewAdminUsersHandler(adminService))
			r.Get("/admin/stats/total-users", handlers.NewTotalUsersHandler(adminService))
			r.Get("/admin/stats/verified-users", handlers.NewVerifiedUsersHandler(adminService))
			r.Get("/admin/stats/top-users", handlers.NewTopUsersHandler(adminService))
			r.Get("/admin/stats/inactive-users", handlers.NewInactiveUsersHandler(adminService))
		})
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
