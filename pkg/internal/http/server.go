package http

import (
	"sync"
	"time"

	"github.com/alpixn/site/pkg/internal/config"
	"github.com/alpixn/site/pkg/internal/http/admin"
	"github.com/alpixn/site/pkg/internal/http/api"
	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/json-iterator/go/extra"
	"github.com/rs/zerolog/log"
)

var registerFuzzyDecoders sync.Once

type App struct {
	app      *fiber.App
	settings *config.Settings
}

func NewServer(settings *config.Settings, deps *api.API) *App {
	registerFuzzyDecoders.Do(extra.RegisterFuzzyDecoders)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Alpixn Site",
		AppName:               "Alpixn Site",
		ErrorHandler:          exts.ErrorHandler,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
		EnablePrintRoutes:     settings.Debug.PrintRoutes,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowOrigins:     settings.ClientURL,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        settings.RateLimit.Max,
		Expiration: settings.RateLimit.Window,
		Next: func(c *fiber.Ctx) bool {
			return settings.RateLimit.Max <= 0
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later")
		},
	}))
	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	if local, ok := deps.Storage.(*storage.LocalProvider); ok {
		app.Static("/uploads", local.Dir(), fiber.Static{
			MaxAge: int((24 * time.Hour).Seconds()),
		})
	}

	deps.MapAPIs(app, "/api")

	if settings.Admin.Enabled {
		(&admin.Admin{
			DB:           deps.DB,
			Storage:      deps.Storage,
			CleanupGrace: settings.Cleanup.Grace,
		}).MapControllers(app, "/api/admin")
	}

	app.Use(func(c *fiber.Ctx) error {
		return exts.Reply(c, fiber.StatusNotFound, exts.Response{Message: "Route not found"})
	})

	return &App{app, settings}
}

// Fiber exposes the underlying router.
func (v *App) Fiber() *fiber.App {
	return v.app
}

func (v *App) Listen() {
	if err := v.app.Listen(v.settings.Bind); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.ShutdownWithTimeout(10 * time.Second)
}
