package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobpath/internal/config"
	"jobpath/internal/database/migration"
	"jobpath/internal/database/seeder"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/delivery/http/routes"
	"jobpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// Bootstrap builds the container, runs pending migrations, and wires the HTTP
// surface. The returned cleanup must be called on shutdown.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	if err := seeder.Defaults().Run(migCtx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}

	hub := ws.NewHub(c.Logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, c)
	routes.Register(f, routes.Deps{
		Config: cfg,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    hub,
		Logger: c.Logger,
	})

	a := &App{Fiber: f, Container: c, Hub: hub}
	return a, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
