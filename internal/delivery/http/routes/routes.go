package routes

import (
	"log"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/delivery/http/handler"
	v1 "jobpath/internal/delivery/http/routes/v1"
	"jobpath/internal/infrastructure/cache"
	"jobpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(deps.DB).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Config: deps.Config,
		DB:     deps.DB,
		Cache:  deps.Cache,
		Hub:    deps.Hub,
		Logger: deps.Logger,
	})
}
