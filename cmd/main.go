package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	productapp "github.com/muhammadheryan/community-market/application/product"
	reservationapp "github.com/muhammadheryan/community-market/application/reservation"
	userapp "github.com/muhammadheryan/community-market/application/user"
	"github.com/muhammadheryan/community-market/cmd/config"
	redisclient "github.com/muhammadheryan/community-market/cmd/redis"
	_ "github.com/muhammadheryan/community-market/docs"
	productRepo "github.com/muhammadheryan/community-market/repository/product"
	redisRepo "github.com/muhammadheryan/community-market/repository/redis"
	reservationRepo "github.com/muhammadheryan/community-market/repository/reservation"
	txRepo "github.com/muhammadheryan/community-market/repository/tx"
	userRepo "github.com/muhammadheryan/community-market/repository/user"
	"github.com/muhammadheryan/community-market/thirdparty/kafka"
	"github.com/muhammadheryan/community-market/thirdparty/rabbitmq"
	"github.com/muhammadheryan/community-market/transport"
	"github.com/muhammadheryan/community-market/utils/logger"
	"github.com/muhammadheryan/community-market/utils/shutdown"
	"go.uber.org/zap"
)

// @title COMMUNITY MARKET API
// @version 1.0
// @description Community marketplace: products, reservations and stock confirmation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer rdb.Close()

	// Optional delayed expiry of pending reservations
	var scheduler reservationapp.ExpirationScheduler
	if cfg.Reservation.PendingTTL > 0 {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer publisher.Close()
		scheduler = publisher
		logger.Info("Reservation expiry enabled", zap.Duration("pending_ttl", cfg.Reservation.PendingTTL))
	}

	// Optional reservation event stream
	var events reservationapp.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		events = producer
		logger.Info("Reservation events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	ReservationRepo := reservationRepo.NewReservationRepository(db)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo)
	ReservationApp := reservationapp.NewReservationApp(cfg, TxRepo, ReservationRepo, ProductRepo, RedisRepo, scheduler, events)

	httpTransport := transport.NewTransport(cfg.Internal.APIKey, UserApp, ProductApp, ReservationApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("failed server", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed graceful shutdown", zap.Error(err))
	}
}
