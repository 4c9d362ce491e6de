package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/alpixn/site/pkg/internal/cache"
	"github.com/alpixn/site/pkg/internal/http/exts"
	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const (
	projectNotFound = "Project not found"
	projectCacheTag = "projects"
	projectMetaTTL  = 5 * time.Minute
)

type projectPayload struct {
	Name         string                     `json:"name"`
	Category     string                     `json:"category"`
	Tags         []string                   `json:"tags"`
	Image        string                     `json:"image"`
	Summary      string                     `json:"summary"`
	Content      string                     `json:"content"`
	Year         int                        `json:"year"`
	Client       string                     `json:"client"`
	Rating       int                        `json:"rating"`
	LiveURL      string                     `json:"liveUrl"`
	GithubURL    string                     `json:"githubUrl"`
	Technologies []models.ProjectTechnology `json:"technologies"`
	Status       string                     `json:"status"`
	Featured     bool                       `json:"featured"`

	PublishedDate *time.Time `json:"publishedDate"`
	IsPublished   *bool      `json:"isPublished"`
}

func newProjectPayload(item models.Project) projectPayload {
	return projectPayload{
		Name:          item.Name,
		Category:      item.Category,
		Tags:          item.Tags,
		Image:         item.Image,
		Summary:       item.Summary,
		Content:       item.Content,
		Year:          item.Year,
		Client:        item.Client,
		Rating:        item.Rating,
		LiveURL:       item.LiveURL,
		GithubURL:     item.GithubURL,
		Technologies:  item.Technologies,
		Status:        item.Status,
		Featured:      item.Featured,
		PublishedDate: lo.ToPtr(item.PublishedDate),
		IsPublished:   lo.ToPtr(item.IsPublished),
	}
}

func (v projectPayload) apply(item models.Project) models.Project {
	item.Name = v.Name
	item.Category = v.Category
	item.Tags = v.Tags
	item.Image = v.Image
	item.Summary = v.Summary
	item.Content = v.Content
	item.Year = v.Year
	item.Client = v.Client
	item.Rating = v.Rating
	item.LiveURL = v.LiveURL
	item.GithubURL = v.GithubURL
	item.Technologies = v.Technologies
	item.Status = v.Status
	item.Featured = v.Featured
	item.PublishedDate = lo.FromPtrOr(v.PublishedDate, item.PublishedDate)
	item.IsPublished = lo.FromPtrOr(v.IsPublished, true)
	return item
}

func emptyIfNil(items []models.Project) []models.Project {
	return lo.Ternary(items == nil, []models.Project{}, items)
}

func (v *API) listProjects(c *fiber.Ctx) error {
	query := services.NewListQuery(c.Query("search"), c.Query("category"), c.Query("page"), c.Query("limit"))

	items, pagination, err := services.QueryProject(v.DB, query)
	if err != nil {
		return err
	}

	return exts.Reply(c, fiber.StatusOK, exts.Response{
		Data:       emptyIfNil(items),
		Pagination: exts.PaginationOf(pagination, "totalProjects"),
	})
}

func (v *API) getProjectBySlug(c *fiber.Ctx) error {
	item, err := services.GetProjectBySlug(v.DB, c.Params("slug"))
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, projectNotFound)
	} else if err != nil {
		return err
	}

	return exts.OK(c, item)
}

func (v *API) getProject(c *fiber.Ctx) error {
	id, err := parseID(c, projectNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetProject(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, projectNotFound)
	} else if err != nil {
		return err
	}

	return exts.OK(c, item)
}

func (v *API) createProject(c *fiber.Ctx) error {
	var data projectPayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewProject(v.DB, data.apply(models.Project{}))
	if err != nil {
		return err
	}

	v.Cache.Invalidate(c.UserContext(), projectCacheTag)
	return exts.Created(c, item, "Project created successfully")
}

func (v *API) editProject(c *fiber.Ctx) error {
	id, err := parseID(c, projectNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetProject(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, projectNotFound)
	} else if err != nil {
		return err
	}
	previousImage := item.Image

	data := newProjectPayload(item)
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err = services.EditProject(v.DB, data.apply(item), item.Name)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, projectNotFound)
	} else if err != nil {
		return err
	}

	if previousImage != item.Image {
		v.releaseImages(c, previousImage)
	}
	v.Cache.Invalidate(c.UserContext(), projectCacheTag)
	return exts.OK(c, item, "Project updated successfully")
}

func (v *API) deleteProject(c *fiber.Ctx) error {
	id, err := parseID(c, projectNotFound)
	if err != nil {
		return err
	}

	item, err := services.GetProject(v.DB, id)
	if services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, projectNotFound)
	} else if err != nil {
		return err
	}

	if err := services.DeleteProject(v.DB, item); services.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, projectNotFound)
	} else if err != nil {
		return err
	}

	v.releaseImages(c, item.Image)
	v.Cache.Invalidate(c.UserContext(), projectCacheTag)
	return exts.OK(c, nil, "Project deleted successfully")
}

func (v *API) listRelatedProjects(c *fiber.Ctx) error {
	var excludeID uint
	if raw := c.Query("excludeId"); len(raw) > 0 {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			excludeID = uint(id)
		}
	}

	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category")
	}

	items, err := services.ListRelatedProject(v.DB, category, excludeID, c.QueryInt("limit", 6))
	if err != nil {
		return err
	}

	return exts.OK(c, emptyIfNil(items))
}

func (v *API) listFeaturedProjects(c *fiber.Ctx) error {
	items, err := services.ListFeaturedProject(v.DB, c.QueryInt("limit", services.DefaultFeaturedCount))
	if err != nil {
		return err
	}

	return exts.OK(c, emptyIfNil(items))
}

func (v *API) listProjectCategories(c *fiber.Ctx) error {
	categories, err := cache.Remember(c.UserContext(), v.Cache, "projects#categories", projectMetaTTL, []string{projectCacheTag}, func() ([]string, error) {
		return services.ListProjectCategory(v.DB)
	})
	if err != nil {
		return err
	}

	return exts.OK(c, lo.Ternary(categories == nil, []string{}, categories))
}

func (v *API) getProjectStats(c *fiber.Ctx) error {
	stats, err := cache.Remember(c.UserContext(), v.Cache, "projects#stats", projectMetaTTL, []string{projectCacheTag}, func() (services.ProjectStats, error) {
		return services.GetProjectStats(v.DB)
	})
	if err != nil {
		return err
	}
	if stats.RecentProjects == nil {
		stats.RecentProjects = []services.ProjectDigest{}
	}

	return exts.OK(c, stats)
}
