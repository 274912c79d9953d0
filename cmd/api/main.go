package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/medrec/hospital-api/internal/config"
	appointmentHandler "github.com/medrec/hospital-api/internal/handler/appointment"
	authHandler "github.com/medrec/hospital-api/internal/handler/auth"
	departmentHandler "github.com/medrec/hospital-api/internal/handler/department"
	doctorHandler "github.com/medrec/hospital-api/internal/handler/doctor"
	healthHandler "github.com/medrec/hospital-api/internal/handler/health"
	patientHandler "github.com/medrec/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/medrec/hospital-api/internal/handler/prescription"
	"github.com/medrec/hospital-api/internal/middleware"
	"github.com/medrec/hospital-api/internal/repository/postgres"
	"github.com/medrec/hospital-api/internal/router"
	appointmentService "github.com/medrec/hospital-api/internal/service/appointment"
	authService "github.com/medrec/hospital-api/internal/service/auth"
	departmentService "github.com/medrec/hospital-api/internal/service/department"
	doctorService "github.com/medrec/hospital-api/internal/service/doctor"
	patientService "github.com/medrec/hospital-api/internal/service/patient"
	prescriptionService "github.com/medrec/hospital-api/internal/service/prescription"
	"github.com/medrec/hospital-api/pkg/auth"
	"github.com/medrec/hospital-api/pkg/security"
)

const bcryptCost = 12

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)

	// Credential store. The revocation set lives for the process lifetime
	// and is swept every ten minutes.
	tokenManager := auth.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := security.NewBcryptHasher(bcryptCost)
	revoked := cache.New(cache.NoExpiration, 10*time.Minute)
	authSvc := authService.NewService(userRepo, tokenManager, hasher, revoked)

	// Services
	departmentSvc := departmentService.NewService(departmentRepo)
	doctorSvc := doctorService.NewService(doctorRepo, departmentRepo)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, patientRepo, doctorRepo)

	// Router
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	r := router.New(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db),
		router.Config{
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		departmentHandler.NewHandler(departmentSvc),
		doctorHandler.NewHandler(doctorSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
