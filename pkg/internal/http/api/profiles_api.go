package api

import (
	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const profileNotFound = "Profile not found"

type profilePayload struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Bio      string `json:"bio" form:"bio"`
	Position string `json:"position" form:"position"`
}

func (v *API) completeProfile(item models.Profile) models.Profile {
	if image := lo.FromPtr(item.Image); len(image) > 0 {
		item.ImageURL = lo.ToPtr(v.Storage.URL(image))
	}
	return item
}

func (v *API) listProfiles(c *fiber.Ctx) error {
	items, err := services.ListProfile(v.DB)
	if err != nil {
		return err
	}

	items = lo.Map(items, func(item models.Profile, _ int) models.Profile {
		return v.completeProfile(item)
	})
	return exts.Reply(c, fiber.StatusOK, exts.Response{
		Data:  items,
		Count: lo.ToPtr(len(items)),
	})
}

func (v *API) getProfile(c *fiber.Ctx) error {
	id, err := parseID(c, profileNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetProfile(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, profileNotFound)
	} else if err != nil {
		return err
	}

	return exts.OK(c, v.completeProfile(item))
}

func (v *API) createProfile(c *fiber.Ctx) error {
	var data profilePayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	pending, err := v.stageFormImage(c, "image", "profile")
	if err != nil {
		return err
	}
	defer pending.Discard(c.UserContext())

	item := models.Profile{
		Name:     data.Name,
		Email:    data.Email,
		Bio:      data.Bio,
		Position: data.Position,
	}
	if name := pending.Name(); len(name) > 0 {
		item.Image = &name
	}

	item, err = services.NewProfile(v.DB, item)
	if err != nil {
		return err
	}
	pending.Adopt()

	return exts.Created(c, v.completeProfile(item), "Profile created successfully")
}

func (v *API) editProfile(c *fiber.Ctx) error {
	id, err := parseID(c, profileNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetProfile(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, profileNotFound)
	} else if err != nil {
		return err
	}
	previousImage := lo.FromPtr(item.Image)

	data := profilePayload{
		Name:     item.Name,
		Email:    item.Email,
		Bio:      item.Bio,
		Position: item.Position,
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	pending, err := v.stageFormImage(c, "image", "profile")
	if err != nil {
		return err
	}
	defer pending.Discard(c.UserContext())

	item.Name = data.Name
	item.Email = data.Email
	item.Bio = data.Bio
	item.Position = data.Position
	if name := pending.Name(); len(name) > 0 {
		item.Image = &name
	}

	item, err = services.EditProfile(v.DB, item)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, profileNotFound)
	} else if err != nil {
		return err
	}
	pending.Adopt()

	if pending != nil && len(previousImage) > 0 {
		v.releaseImages(c, previousImage)
	}

	return exts.OK(c, v.completeProfile(item), "Profile updated successfully")
}

func (v *API) deleteProfile(c *fiber.Ctx) error {
	id, err := parseID(c, profileNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetProfile(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, profileNotFound)
	} else if err != nil {
		return err
	}

	if err := services.DeleteProfile(v.DB, item); services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, profileNotFound)
	} else if err != nil {
		return err
	}

	v.releaseImages(c, lo.FromPtr(item.Image))

	return exts.OK(c, nil, "Profile deleted successfully")
}
