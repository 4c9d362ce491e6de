package models

const (
	PostCategoryTechnology  = "Technology"
	PostCategoryMarketing   = "Marketing"
	PostCategoryBusiness    = "Business"
	PostCategoryDesign      = "Design"
	PostCategoryDevelopment = "Development"
	PostCategoryAI          = "AI"
	PostCategoryOther       = "Other"
)

var PostCategories = []string{
	PostCategoryTechnology,
	PostCategoryMarketing,
	PostCategoryBusiness,
	PostCategoryDesign,
	PostCategoryDevelopment,
	PostCategoryAI,
	PostCategoryOther,
}

var ProjectCategories = []string{
	"E-commerce",
	"Healthcare",
	"FinTech",
	"Education",
	"Real Estate",
	"Food & Beverage",
	"Government",
	"Marketing",
	"Gaming",
	"Other",
}

var TechnologyCategories = []string{
	"Frontend",
	"Backend",
	"Database",
	"DevOps",
	"Mobile",
	"Other",
}

const (
	ProjectStatusPlanning    = "Planning"
	ProjectStatusInProgress  = "In Progress"
	ProjectStatusCompleted   = "Completed"
	ProjectStatusMaintenance = "Maintenance"
)

var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusMaintenance,
}
