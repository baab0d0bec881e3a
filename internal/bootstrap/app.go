package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"userhub/internal/config"
	"userhub/internal/model"
	mysqlClient "userhub/internal/platform/mysql"
	rabbitmqClient "userhub/internal/platform/rabbitmq"
	redisClient "userhub/internal/platform/redis"
	"userhub/internal/repository"
	"userhub/internal/worker"
)

type App struct {
	Config        *config.Config
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	ContactWorker *worker.ContactPersistWorker

	StartedAt time.Time
}

// New wires every external dependency. Config validation happens inside
// config.Load, so a missing JWT secret aborts startup here and nowhere later.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.ContactSubmission{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	contactRepo := repository.NewContactRepository(db)
	contactWorker := worker.NewContactPersistWorker(mqConn, contactRepo, cfg.RabbitMQ.ContactPersistQueue)
	if err := contactWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start contact worker failed: %w", err)
	}

	return &App{
		Config:        cfg,
		MySQL:         db,
		Redis:         redisCli,
		MQConn:        mqConn,
		ContactWorker: contactWorker,
		StartedAt:     time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ContactWorker != nil {
		a.ContactWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		if sqlDB, err := a.MySQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && closeErr == nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
