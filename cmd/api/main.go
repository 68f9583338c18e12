package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/config"
	dbpkg "github.com/BruksfildServices01/barberpro/internal/db"
	"github.com/BruksfildServices01/barberpro/internal/infra/storage"
	"github.com/BruksfildServices01/barberpro/internal/logger"
	"github.com/BruksfildServices01/barberpro/internal/mailer"
	"github.com/BruksfildServices01/barberpro/internal/metrics"
	"github.com/BruksfildServices01/barberpro/internal/realtime"
	"github.com/BruksfildServices01/barberpro/internal/routes"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if err := validators.Register(); err != nil {
		log.Fatal().Err(err).Msg("register validators")
	}

	// 1️⃣ Banco (NewDB já migra)
	db := dbpkg.NewDB(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2️⃣ Tempo real: Redis quando configurado, senão memória
	var hub realtime.Hub = realtime.NewMemoryHub()
	if cfg.RedisURL != "" {
		redisHub, err := realtime.NewRedisHub(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory notifications")
		} else {
			defer redisHub.Close()
			hub = redisHub
		}
	}

	// 3️⃣ Fotos
	var photos storage.PhotoStorage
	if cfg.S3.Enabled() {
		photos = storage.NewS3Storage(cfg.S3)
	} else {
		log.Info().Msg("S3 not configured, photo upload disabled")
	}

	// 4️⃣ Métricas
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		gatherer = reg
	}

	// 5️⃣ E-mail e auditoria em segundo plano
	sender := mailer.NewSender(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.EmailFrom, log)
	confirmations := mailer.NewDispatcher(sender, log, m, 100)
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:            db,
		Config:        cfg,
		Log:           log,
		Clock:         timezone.NewShopClock(cfg.Timezone),
		Hub:           hub,
		Photos:        photos,
		Sender:        sender,
		Confirmations: confirmations,
		Audit:         auditDispatcher,
		Metrics:       m,
		Gatherer:      gatherer,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("timezone", cfg.Timezone).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// fila de e-mails e auditoria drenam depois das últimas requisições
	confirmations.Close()
	auditDispatcher.Close()
}
