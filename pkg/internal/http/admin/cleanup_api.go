package admin

import (
	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/alpixn/site/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (v *Admin) adminTriggerUploadCleanup(c *fiber.Ctx) error {
	count, err := services.DoAutoUploadCleanup(c.UserContext(), v.DB, v.Storage, v.CleanupGrace)
	if err != nil {
		return err
	}

	return exts.OK(c, fiber.Map{"deleted": count}, "Cleanup finished")
}
