package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	dbadapter "taskhub/internal/adapter/db"
	"taskhub/internal/adapter/events"
	httpadapter "taskhub/internal/adapter/http"
	"taskhub/internal/adapter/http/handlers"
	httpmiddleware "taskhub/internal/adapter/http/middleware"
	"taskhub/internal/adapter/memory"
	"taskhub/internal/adapter/metrics"
	"taskhub/internal/adapter/scheduler"
	appservice "taskhub/internal/app/service"
	"taskhub/internal/config"
	"taskhub/internal/core/ports"
	"taskhub/internal/core/uow"
	"taskhub/pkg/logger"
	"taskhub/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(log)
	defer func() {
		if err := log.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, db := openStore(cfg, log)
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
	}

	bus := events.NewBus()
	events.RegisterLoggingSubscribers(bus, log)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = events.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
		publisher := events.NewStreamPublisher(rdb, cfg.RedisStream, cfg.RedisStreamMaxLen)
		bus.SubscribeAll(events.NewRetryDispatcher(publisher, cfg.EventRetryAttempts).Publish)
		log.Info("publishing domain events to redis", zap.String("stream", cfg.RedisStream))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	factory := uow.NewFactory(store, appMetrics.Instrument(bus))
	tx := appservice.NewTransactor(factory, log)
	projectService := appservice.NewProjectService(tx, factory)
	teamService := appservice.NewTeamService(tx, factory)

	if cfg.OverdueScanInterval > 0 {
		jobs, err := scheduler.NewManager(log)
		if err != nil {
			log.Fatal("failed to create scheduler", zap.Error(err))
		}
		if err := jobs.Register(scheduler.NewOverdueTaskJob(projectService, cfg.OverdueScanInterval, log)); err != nil {
			log.Fatal("failed to register overdue scan", zap.Error(err))
		}
		jobs.Start()
		defer jobs.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(log), appMetrics.Middleware())
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	healthHandler := handlers.NewHealthHandler(cfg.StoreDriver, mysqlPinger(db), redisPinger(rdb))
	httpadapter.RegisterRoutes(r, healthHandler, handlers.NewProjectHandler(projectService), handlers.NewTeamHandler(teamService))
	r.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown failed", zap.Error(err))
	}
}

// openStore returns the aggregate store selected by STORE_DRIVER and, for
// mysql, the underlying connection.
func openStore(cfg *config.Config, log *zap.Logger) (ports.Store, *sqlx.DB) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), nil
	case config.StoreDriverMySQL:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			log.Fatal("failed to connect to mysql", zap.Error(err))
		}
		return dbadapter.NewStore(db), db
	default:
		log.Fatal("unknown store driver", zap.String("driver", cfg.StoreDriver))
		return nil, nil
	}
}

func mysqlPinger(db *sqlx.DB) handlers.Pinger {
	if db == nil {
		return nil
	}
	return db.PingContext
}

func redisPinger(rdb *redis.Client) handlers.Pinger {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
