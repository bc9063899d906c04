package main

import (
	"context"

	"github.com/muhammadheryan/community-market/cmd/config"
	"github.com/muhammadheryan/community-market/thirdparty/rabbitmq"
	"github.com/muhammadheryan/community-market/utils/logger"
	"github.com/muhammadheryan/community-market/utils/shutdown"
	"go.uber.org/zap"
)

// worker consumes delayed reservation expiry messages and asks the API to
// expire each reservation that is still pending.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	if cfg.Internal.APIKey == "" {
		logger.Fatal("INTERNAL_API_KEY is required")
	}

	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	consumer, err := rabbitmq.NewConsumer(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
		cfg.Internal.APIURL,
		cfg.Internal.APIKey,
	)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	done, err := consumer.Start(ctx)
	if err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}
	logger.Info("Reservation expiration worker started", zap.String("api_url", cfg.Internal.APIURL))

	<-done
	logger.Info("Reservation expiration worker stopped")
}
