package admin

import (
	"time"

	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Admin struct {
	DB           *gorm.DB
	Storage      storage.Provider
	CleanupGrace time.Duration
}

func (v *Admin) MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL).Name("Admin API")
	{
		admin.Post("/cleanup", v.adminTriggerUploadCleanup)
	}
}
