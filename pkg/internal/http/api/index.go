package api

import (
	"github.com/alpixn/site/pkg/internal/cache"
	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type API struct {
	DB      *gorm.DB
	Storage storage.Provider
	Cache   *cache.Store
	Upload  storage.UploadOptions
}

func (v *API) MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		api.Get("/health", v.getHealth)

		profiles := api.Group("/profiles").Name("Profiles API")
		{
			profiles.Get("/", v.listProfiles)
			profiles.Get("/:id", v.getProfile)
			profiles.Post("/", v.createProfile)
			profiles.Put("/:id", v.editProfile)
			profiles.Delete("/:id", v.deleteProfile)
		}

		blogs := api.Group("/blogs").Name("Blogs API")
		{
			blogs.Get("/", v.listBlogs)
			blogs.Get("/slug/:slug", v.getBlogBySlug)
			blogs.Put("/like/:id", v.likeBlog)
			blogs.Get("/:id", v.getBlog)
			blogs.Post("/", v.createBlog)
			blogs.Put("/:id", v.editBlog)
			blogs.Delete("/:id", v.deleteBlog)
		}

		projects := api.Group("/projects").Name("Projects API")
		{
			projects.Get("/", v.listProjects)
			projects.Get("/meta/featured", v.listFeaturedProjects)
			projects.Get("/meta/categories", v.listProjectCategories)
			projects.Get("/meta/stats", v.getProjectStats)
			projects.Get("/category/:category", v.listRelatedProjects)
			projects.Get("/slug/:slug", v.getProjectBySlug)
			projects.Get("/:id", v.getProject)
			projects.Post("/", v.createProject)
			projects.Put("/:id", v.editProject)
			projects.Delete("/:id", v.deleteProject)
		}

		api.Post("/uploads", v.uploadImage)
	}
}
