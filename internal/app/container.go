package app

import (
	"context"
	"log"
	"os"
	"time"

	"jobpath/internal/config"
	"jobpath/internal/database"
	dbpostgres "jobpath/internal/database/postgres"
	"jobpath/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
