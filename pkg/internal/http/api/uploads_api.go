package api

import (
	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (v *API) uploadImage(c *fiber.Ctx) error {
	pending, err := v.stageFormImage(c, "image", "upload")
	if err != nil {
		return err
	} else if pending == nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	pending.Adopt()

	return exts.Created(c, fiber.Map{
		"filename": pending.Name(),
		"url":      pending.URL(),
	}, "File uploaded successfully")
}
