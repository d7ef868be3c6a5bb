package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medrec/patient-api/internal/config"
	"github.com/medrec/patient-api/internal/handler"
	diagnosisHandler "github.com/medrec/patient-api/internal/handler/diagnosis"
	patientHandler "github.com/medrec/patient-api/internal/handler/patient"
	"github.com/medrec/patient-api/internal/middleware"
	"github.com/medrec/patient-api/internal/repository/memory"
	"github.com/medrec/patient-api/internal/router"
	"github.com/medrec/patient-api/internal/seed"
	diagnosisService "github.com/medrec/patient-api/internal/service/diagnosis"
	patientService "github.com/medrec/patient-api/internal/service/patient"
	"github.com/medrec/patient-api/internal/validation"
	"github.com/medrec/patient-api/pkg/logger"
	"github.com/medrec/patient-api/pkg/messaging"
	redisbroker "github.com/medrec/patient-api/pkg/messaging/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	// Seed the in-memory stores from the embedded reference data.
	patients, err := seed.Patients()
	if err != nil {
		appLogger.Fatal(err, "failed to load patient seed data")
	}
	diagnoses, err := seed.Diagnoses()
	if err != nil {
		appLogger.Fatal(err, "failed to load diagnosis seed data")
	}

	patientRepo := memory.NewPatientRepository(patients)
	diagnosisRepo := memory.NewDiagnosisRepository(diagnoses)

	// Event publishing is optional; without Redis the services publish
	// into a no-op sink.
	var events messaging.Publisher = messaging.NoopPublisher{}
	if cfg.Redis.Enabled {
		broker, err := redisbroker.NewBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: time.Duration(cfg.Redis.RetryBackoffMS) * time.Millisecond,
			PoolSize:     cfg.Redis.PoolSize,
		}, appLogger.Zerolog())
		if err != nil {
			appLogger.Fatal(err, "failed to connect event broker")
		}
		defer broker.Close()
		events = messaging.NewBrokerPublisher(broker, cfg.Redis.Channel)
	}

	patientSvc := patientService.NewService(patientRepo, events)
	diagnosisSvc := diagnosisService.NewService(diagnosisRepo, time.Duration(cfg.Cache.DiagnosisTTLSeconds)*time.Second)

	validator := validation.New()

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	corsConfig.AllowCredentials = cfg.CORS.AllowCredentials

	r := router.NewRouter(router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           corsConfig,
		MetricsPrefix:  "patient_api",
		ReleaseMode:    true,
	},
		patientHandler.NewHandler(patientSvc, validator),
		diagnosisHandler.NewHandler(diagnosisSvc),
		handler.NewHandler(),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
}
