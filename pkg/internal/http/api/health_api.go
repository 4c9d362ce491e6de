package api

import (
	"time"

	pkg "github.com/alpixn/site/pkg/internal"
	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (v *API) getHealth(c *fiber.Ctx) error {
	return exts.OK(c, fiber.Map{
		"version":   pkg.AppVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "Server is running successfully!")
}
