package exts

import (
	"github.com/alpixn/site/pkg/internal/validation"
	"github.com/gofiber/fiber/v2"
)

func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return validation.Struct(out)
}
