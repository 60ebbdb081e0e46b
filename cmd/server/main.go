package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/plataforma/labstock/docs"
	groupHTTP "github.com/plataforma/labstock/internal/group/delivery/http"
	groupRepo "github.com/plataforma/labstock/internal/group/repository"
	materialHTTP "github.com/plataforma/labstock/internal/material/delivery/http"
	materialRepo "github.com/plataforma/labstock/internal/material/repository"
	reservationHTTP "github.com/plataforma/labstock/internal/reservation/delivery/http"
	reservationRepo "github.com/plataforma/labstock/internal/reservation/repository"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
	subjectHTTP "github.com/plataforma/labstock/internal/subject/delivery/http"
	subjectRepo "github.com/plataforma/labstock/internal/subject/repository"
	userHTTP "github.com/plataforma/labstock/internal/user/delivery/http"
	userRepo "github.com/plataforma/labstock/internal/user/repository"
	"github.com/plataforma/labstock/kafka"
	"github.com/plataforma/labstock/pkg/database"
	"github.com/plataforma/labstock/pkg/logger"
	"github.com/plataforma/labstock/pkg/tracing"
)

// Directory adapters backing the reservation core's existence checks.
type userDirectory struct{ repo *userRepo.GormUserRepository }

func (d userDirectory) UserExists(id uint) (bool, error) { return d.repo.Exists(id) }

type subjectDirectory struct{ repo *subjectRepo.GormSubjectRepository }

func (d subjectDirectory) SubjectExists(id uint) (bool, error) { return d.repo.Exists(id) }

type groupDirectory struct{ repo *groupRepo.GormGroupRepository }

func (d groupDirectory) GroupExists(id uint) (bool, error) { return d.repo.Exists(id) }

func main() {
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "labstock-server")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting labstock server")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "labstock"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories and run migrations
	users := userRepo.NewGormUserRepository(db)
	materials := materialRepo.NewGormMaterialRepository(db)
	ledger := materialRepo.NewTracingStockLedger(db)
	reservations := reservationRepo.NewGormReservationRepository(db)
	lines := reservationRepo.NewGormMaterialLineRepository(db)
	members := reservationRepo.NewGormTeamMemberRepository(db)
	subjects := subjectRepo.NewGormSubjectRepository(db)
	groups := groupRepo.NewGormGroupRepository(db)

	for _, migrate := range []func() error{
		users.AutoMigrate,
		materials.AutoMigrate,
		subjects.AutoMigrate,
		groups.AutoMigrate,
		reservations.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional: the ledger stays authoritative when the
	// broker is down, so a failed connection only disables audit events.
	var publisher command.MovementPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		pub, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, stock movement events disabled")
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	// Initialize HTTP handlers
	userHandler := userHTTP.NewUserHandler(users)
	materialHandler := materialHTTP.NewMaterialHandler(materials, ledger)
	subjectHandler := subjectHTTP.NewSubjectHandler(subjects)
	groupHandler := groupHTTP.NewGroupHandler(groups)
	reservationHandler := reservationHTTP.NewReservationHandler(reservationHTTP.Deps{
		Reservations: reservations,
		Lines:        lines,
		Members:      members,
		Users:        userDirectory{repo: users},
		Subjects:     subjectDirectory{repo: subjects},
		Groups:       groupDirectory{repo: groups},
		Publisher:    publisher,
	})

	// Setup router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	materialHandler.RegisterRoutes(router)
	subjectHandler.RegisterRoutes(router)
	groupHandler.RegisterRoutes(router)
	reservationHandler.RegisterRoutes(router)

	// Health check endpoint
	userHandler.RegisterHealthCheck(router, sqlDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	userHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: otelhttp.NewHandler(c.Handler(router), "labstock-server"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
