package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/callback"
	"praxis-cashier-api/internal/channel/health"
	"praxis-cashier-api/internal/config"
	"praxis-cashier-api/internal/dal"
	"praxis-cashier-api/internal/event"
	"praxis-cashier-api/internal/handler"
	"praxis-cashier-api/internal/idgen"
	"praxis-cashier-api/internal/logger"
	"praxis-cashier-api/internal/metrics"
	"praxis-cashier-api/internal/mq"
	"praxis-cashier-api/internal/repo"
	"praxis-cashier-api/internal/router"
	"praxis-cashier-api/internal/service"
)

func main() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	// load config env
	cfg, err := config.Load(*env)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := mustLogger(cfg, "app")
	accessLog := mustLogger(cfg, "access")
	errorLog := mustLogger(cfg, "error")

	if cfg.Praxis.MerchantID == "" || cfg.Praxis.AppKey == "" || cfg.Praxis.Secret == "" {
		appLog.Warn("praxis credentials incomplete, gateway will reject requests")
	}

	// idgen
	if err := idgen.InitNode("default", 1); err != nil {
		appLog.WithError(err).Fatal("init snowflake node")
	}

	ctx := context.Background()

	// store
	var store repo.OrderStore
	switch cfg.Store.Driver {
	case "redis":
		rdb, err := dal.NewRedis(ctx, cfg.Redis)
		if err != nil {
			appLog.WithError(err).Fatal("connect redis")
		}
		defer rdb.Close()
		store = repo.NewRedisOrderStore(rdb, cfg.Redis.KeyPrefix)
	case "memory":
		store = repo.NewMemoryOrderStore()
	default:
		appLog.Fatalf("unknown store driver %q", cfg.Store.Driver)
	}

	// events
	var pub event.Publisher = event.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		conn, ch, err := dal.NewRabbitMQ(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			appLog.WithError(err).Fatal("connect rabbitmq")
		}
		defer conn.Close()
		defer ch.Close()
		pub = mq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
	}

	m := metrics.New()
	strategy, err := health.NewStrategy(cfg.Health.Strategy)
	if err != nil {
		appLog.WithError(err).Fatal("init gateway health")
	}
	gatewayHealth := health.NewGatewayHealthManager(strategy, cfg.Health.Threshold)
	client := service.NewPraxisClient(cfg.Praxis.Endpoint, cfg.Praxis.Timeout, &http.Client{}, appLog)
	praxisSvc := service.NewPraxisService(cfg, store, client, idgen.NewOrderIDGenerator(), gatewayHealth, m, appLog)
	cb := callback.NewPraxisCallback(store, pub, cfg.Praxis.WebhookIPWhitelist, appLog)

	// http server
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := router.New(router.Deps{
		Praxis:         handler.NewPraxisHandler(praxisSvc, cb, m, appLog),
		History:        handler.NewHistoryHandler(service.NewHistoryService(store, cfg.Order.DefaultCID), appLog),
		Health:         handler.NewHealthHandler(cfg.Praxis.Env, gatewayHealth),
		Metrics:        m,
		PublicDir:      cfg.Server.PublicDir,
		TrustedProxies: cfg.Server.TrustedProxies,
		AppLog:         appLog,
		AccessLog:      accessLog,
		ErrorLog:       errorLog,
	})
	if err != nil {
		appLog.WithError(err).Fatal("build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"env":      cfg.Praxis.Env,
			"endpoint": cfg.Praxis.Endpoint,
			"store":    cfg.Store.Driver,
		}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Praxis.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("server forced to shutdown")
	}
	appLog.Info("server exited")
}

func mustLogger(cfg *config.Root, logType string) *logrus.Logger {
	l, err := logger.NewLogger(cfg.Log.Dir, logType, cfg.Log.Level)
	if err != nil {
		log.Fatalf("init %s logger: %v", logType, err)
	}
	return l
}
