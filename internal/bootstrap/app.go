package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pinboard/internal/config"
	"pinboard/internal/model"
	"pinboard/internal/pkg/imagestore"
	"pinboard/internal/pkg/mailer"
	mysqlClient "pinboard/internal/platform/mysql"
	rabbitmqClient "pinboard/internal/platform/rabbitmq"
	redisClient "pinboard/internal/platform/redis"
	"pinboard/internal/worker"
)

type App struct {
	Config     *config.Config
	MySQL      *gorm.DB
	Redis      *redis.Client
	MQConn     *amqp.Connection
	MailWorker *worker.MailWorker
	Images     *imagestore.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, &cfg.MySQL)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Pin{}, &model.Comment{}, &model.Token{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, &cfg.Redis)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, &cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	mailWorker := worker.NewMailWorker(mqConn, mailer.New(&cfg.SMTP), cfg.RabbitMQ.MailQueue)
	if err := mailWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start mail worker failed: %w", err)
	}

	var images *imagestore.Store
	if cfg.S3.Bucket != "" {
		images, err = imagestore.New(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("init image store failed: %w", err)
		}
	} else {
		log.Printf("image store not configured, only image URLs accepted")
	}

	return &App{
		Config:     cfg,
		MySQL:      mysqlDB,
		Redis:      redisCli,
		MQConn:     mqConn,
		MailWorker: mailWorker,
		Images:     images,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MailWorker != nil {
		a.MailWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
