package api

import (
	"fmt"
	"time"

	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const blogNotFound = "Blog not found"

type blogPayload struct {
	Title             string            `json:"title"`
	Excerpt           string            `json:"excerpt"`
	Content           string            `json:"content"`
	AdditionalContent string            `json:"additionalContent"`
	Category          string            `json:"category"`
	Tags              []string          `json:"tags"`
	Image             string            `json:"image"`
	AdditionalImages  []string          `json:"additionalImages"`
	Author            models.PostAuthor `json:"author"`
	PublishedDate     *time.Time        `json:"publishedDate"`
	IsPublished       *bool             `json:"isPublished"`
}

func newBlogPayload(item models.Post) blogPayload {
	return blogPayload{
		Title:             item.Title,
		Excerpt:           item.Excerpt,
		Content:           item.Content,
		AdditionalContent: item.AdditionalContent,
		Category:          item.Category,
		Tags:              item.Tags,
		Image:             item.Image,
		AdditionalImages:  item.AdditionalImages,
		Author:            item.Author,
		PublishedDate:     lo.ToPtr(item.PublishedDate),
		IsPublished:       lo.ToPtr(item.IsPublished),
	}
}

func (v blogPayload) apply(item models.Post) models.Post {
	item.Title = v.Title
	item.Excerpt = v.Excerpt
	item.Content = v.Content
	item.AdditionalContent = v.AdditionalContent
	item.Category = v.Category
	item.Tags = v.Tags
	item.Image = v.Image
	item.AdditionalImages = v.AdditionalImages
	item.Author = v.Author
	item.PublishedDate = lo.FromPtrOr(v.PublishedDate, item.PublishedDate)
	item.IsPublished = lo.FromPtrOr(v.IsPublished, true)
	return item
}

func (v *API) listBlogs(c *fiber.Ctx) error {
	query := services.NewListQuery(c.Query("search"), c.Query("category"), c.Query("page"), c.Query("limit"))

	items, pagination, err := services.QueryPost(v.DB, query)
	if err != nil {
		return err
	}

	return exts.Reply(c, fiber.StatusOK, exts.Response{
		Data:       lo.Ternary(items == nil, []models.Post{}, items),
		Pagination: exts.PaginationOf(pagination, "totalBlogs"),
	})
}

func (v *API) getBlogBySlug(c *fiber.Ctx) error {
	item, err := services.GetPostBySlug(v.DB, c.Params("slug"))
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}

	return exts.OK(c, item)
}

func (v *API) getBlog(c *fiber.Ctx) error {
	id, err := parseID(c, blogNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetPost(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}

	return exts.OK(c, item)
}

func (v *API) createBlog(c *fiber.Ctx) error {
	var data blogPayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(v.DB, data.apply(models.Post{}))
	if err != nil {
		return err
	}

	return exts.Created(c, item, "Blog created successfully")
}

func (v *API) editBlog(c *fiber.Ctx) error {
	id, err := parseID(c, blogNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetPost(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}
	previousRefs := services.PostImageRefs(item)

	data := newBlogPayload(item)
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err = services.EditPost(v.DB, data.apply(item), item.Title)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}

	v.releaseImages(c, lo.Without(previousRefs, services.PostImageRefs(item)...)...)

	return exts.OK(c, item, "Blog updated successfully")
}

func (v *API) deleteBlog(c *fiber.Ctx) error {
	id, err := parseID(c, blogNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetPost(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}

	if err := services.DeletePost(v.DB, item); services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}

	v.releaseImages(c, services.PostImageRefs(item)...)

	return exts.OK(c, nil, "Blog deleted successfully")
}

func (v *API) likeBlog(c *fiber.Ctx) error {
	id, err := parseID(c, blogNotFound)
	if err != nil {
		return err
	}

	var data struct {
		Action string `json:"action"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	likes, err := services.LikePost(v.DB, id, data.Action)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, blogNotFound)
	} else if err != nil {
		return err
	}

	return exts.OK(c, fiber.Map{"likes": likes}, fmt.Sprintf("Blog %sd successfully", data.Action))
}
