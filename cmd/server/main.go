package main

import (
	"database/sql"
	"net/http"

	"fstore-be/internal/api"
	"fstore-be/internal/cart"
	"fstore-be/internal/category"
	"fstore-be/internal/config"
	"fstore-be/internal/db"
	"fstore-be/internal/food"
	"fstore-be/internal/logger"
	"fstore-be/internal/messaging"
	"fstore-be/internal/metrics"
	"fstore-be/internal/middleware"
	"fstore-be/internal/order"
	"fstore-be/internal/user"

	"go.uber.org/zap"
)

// Swapped out in tests.
var (
	initDBFunc      = db.InitDB
	dialBrokerFunc  = dialBroker
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	publisher, closeBroker := dialBrokerFunc(cfg)
	defer closeBroker()

	stop := make(chan struct{})
	defer close(stop)

	handler := newServer(cfg, database, publisher, stop)

	logger.L().Info("http server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, handler)
}

// dialBroker falls back to dropping order events when no broker is
// configured or reachable; orders must still be placeable.
func dialBroker(cfg *config.Config) (order.EventPublisher, func()) {
	noop := func() {}
	if cfg.AMQPURL == "" {
		logger.L().Warn("AMQP_URL not set, order events will not be published")
		return messaging.NoopPublisher{}, noop
	}

	conn, err := messaging.Dial(cfg.AMQPURL)
	if err != nil {
		logger.L().Error("rabbitmq unavailable, order events will not be published", zap.Error(err))
		return messaging.NoopPublisher{}, noop
	}

	return messaging.NewPublisher(conn, metrics.Default), func() {
		if err := conn.Close(); err != nil {
			logger.L().Warn("failed to close rabbitmq connection", zap.Error(err))
		}
	}
}

func newServer(cfg *config.Config, database *sql.DB, publisher order.EventPublisher, stop <-chan struct{}) http.Handler {
	userRepo := user.NewRepository(database)
	categoryRepo := category.NewRepository(database)
	foodRepo := food.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	orderRepo := order.NewRepository(database)

	foodSvc := food.NewService(foodRepo, categoryRepo)

	router := api.NewRouter(&api.Handler{
		UserSvc:     user.NewService(userRepo),
		CategorySvc: category.NewService(categoryRepo),
		FoodSvc:     foodSvc,
		CartSvc:     cart.NewService(cartRepo, foodSvc, metrics.Default),
		OrderSvc:    order.NewService(orderRepo, publisher, metrics.Default),
		Metrics:     metrics.Default,
	})

	limiter := middleware.NewLimiter(cfg.InternalSecretKey)
	limiter.StartCleanup(stop)

	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.Auth(cfg.JWTSecret)(h)
	h = middleware.CORS(cfg.CORSOrigin)(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}
