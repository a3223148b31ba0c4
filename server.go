package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fuelchain/stationlog_backend/appctx"
	"github.com/fuelchain/stationlog_backend/config"
	"github.com/fuelchain/stationlog_backend/mail"
	"github.com/fuelchain/stationlog_backend/middlewares"
	"github.com/fuelchain/stationlog_backend/models"
	"github.com/fuelchain/stationlog_backend/sweep"
)

const defaultPort = "8080"

func main() {
	logger := config.GetLogger()

	// Configuration must be valid before the first trigger can ever fire.
	cfg, err := config.LoadSweepConfig()
	if err != nil {
		log.Fatalf("startup aborted: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	execLog := sweep.NewExecutionLog()
	dispatcher := sweep.NewMailDispatcher(mail.NewSender(cfg, logger), logger)
	engine := sweep.NewEngine(sweep.NewStore(), dispatcher, execLog, logger, cfg)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(cors.Default())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ops := r.Group("/internal/ops/sweeps", middlewares.AuthMiddleware())
	ops.POST("/first-alert/run", runSweepHandler(logger, sweep.JobFirstAlert, engine.RunFirstAlertSweep))
	ops.POST("/escalation/run", runSweepHandler(logger, sweep.JobEscalation, engine.RunEscalationSweep))
	ops.GET("/executions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"executions": execLog.Snapshot()})
	})

	// Start listening immediately; dependencies connect afterwards.
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	// AutoMigrate can run DDL that blocks tables; allow running it as a
	// separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	go NewSweepScheduler(cfg, engine, logger).Run(schedulerCtx)

	logger.WithFields(logrus.Fields{
		"field":    "startup",
		"port":     port,
		"timezone": cfg.Timezone,
	}).Info("stationlog sweep backend started")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Stop the scheduler first so no new sweep starts while draining.
	cancelScheduler()

	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// runSweepHandler triggers one sweep synchronously. The response mirrors the
// run contract: 200 with the run id on success, 500 with the causal message
// when detection or resolution failed (the execution log has the same record).
func runSweepHandler(logger *logrus.Logger, job string, run func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		runId := uuid.NewString()
		ctx := appctx.Set(c.Request.Context(), appctx.ContextKeyRunId, runId)

		if err := run(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"job": job, "run_id": runId, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"job": job, "run_id": runId, "status": "completed"})
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}
