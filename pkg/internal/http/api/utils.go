package api

import (
	"strconv"

	"github.com/alpixn/site/pkg/internal/services"
	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// parseID reads a positive numeric route parameter. Anything else cannot
// resolve to a record, so it is reported with notFound.
func parseID(c *fiber.Ctx, notFound string) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return uint(id), nil
}

// stageFormImage stages the image sent in the multipart field, if any.
// The returned pending upload is nil when the request carries no file.
func (v *API) stageFormImage(c *fiber.Ctx, field, prefix string) (*storage.Pending, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	opts := v.Upload
	opts.Prefix = prefix
	return storage.Stage(c.UserContext(), v.Storage, files[0], opts)
}

// releaseImages deletes the owned objects behind refs that no remaining record references.
func (v *API) releaseImages(c *fiber.Ctx, refs ...string) {
	refs = lo.Compact(refs)
	if len(refs) == 0 {
		return
	}

	inUse, err := services.CollectImageRefs(v.DB)
	if err != nil {
		log.Warn().Err(err).Msg("Unable to collect image references, keeping uploads...")
		return
	}
	storage.DeleteRefs(c.UserContext(), v.Storage, lo.Without(refs, inUse...)...)
}
