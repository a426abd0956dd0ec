package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wholesaleworks/marketplace/internal/config"
	"github.com/wholesaleworks/marketplace/internal/events"
	"github.com/wholesaleworks/marketplace/internal/handlers"
	"github.com/wholesaleworks/marketplace/internal/logging"
	"github.com/wholesaleworks/marketplace/internal/payments"
	"github.com/wholesaleworks/marketplace/internal/search"
	"github.com/wholesaleworks/marketplace/internal/store"
	httpserver "github.com/wholesaleworks/marketplace/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := store.Connect(ctx, configuration.MONGO_URI, configuration.DB_NAME)
	cancel()
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to mongodb", "database", configuration.DB_NAME)

	st := store.New(db)
	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	if err := st.EnsureIndexes(ctx); err != nil {
		logger.Warn("index creation failed", "error", err)
	}
	cancel()

	producer := events.NewProducer(configuration.KAFKA_ADDRESS)
	if producer == nil {
		logger.Info("kafka disabled, events will not be published")
	}

	var indexer handlers.Indexer
	var searcher handlers.Searcher
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			index := &search.ProductIndex{ES: esClient, Index: "products"}
			indexer = index
			searcher = index
		}
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	deps := httpserver.Deps{
		JWTSecret: jwtSecret,
		Catalog:   &handlers.CatalogHandler{Store: st},
		Product:   &handlers.ProductHandler{Store: st, Producer: producer, Index: indexer},
		Cart:      &handlers.CartHandler{Store: st, Producer: producer},
		Checkout:  &handlers.CheckoutHandler{Store: st, Payments: payments.New(configuration.STRIPE_SECRET_KEY), Producer: producer},
		Auth:      &handlers.AuthHandler{Store: st, JWTSecret: jwtSecret},
		Search:    &handlers.SearchHandler{Searcher: searcher},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	}))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server running", "port", configuration.PORT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
