package api

import (
	"github.com/artemisweb/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	portalHandler        portalHandler
	authHandler          authHandler
	adminProjectsHandler adminProjectsHandler
}

// PageView is the view model for static informational pages.
type PageView struct {
	Title string `json:"title"`
}

// ProjectListView backs home and about: latest projects, newest first.
type ProjectListView struct {
	Title    string            `json:"title"`
	Projects []*models.Project `json:"projects"`
}

// CaseStudiesView backs the paginated case-studies index. The first row
// of the page is pulled out as the featured item, the rest fill the grid.
type CaseStudiesView struct {
	Title      string            `json:"title"`
	Feature    *models.Project   `json:"feature"`
	Projects   []*models.Project `json:"projects"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

// CaseStudyDetailView backs one case-study page.
type CaseStudyDetailView struct {
	Title        string                 `json:"title"`
	Project      *models.Project        `json:"project"`
	Technologies []*models.Technology   `json:"technologies"`
	Images       []*models.ProjectImage `json:"images"`
}

// AdminProjectsView backs the admin project list.
type AdminProjectsView struct {
	Title    string            `json:"title"`
	Operator *SessionUser      `json:"operator,omitempty"`
	Projects []*models.Project `json:"projects"`
	Flash    *Flash            `json:"flash,omitempty"`
}

// AdminProjectFormView backs the create form: the technology catalog the
// operator picks from.
type AdminProjectFormView struct {
	Title        string               `json:"title"`
	Technologies []*models.Technology `json:"technologies"`
	Flash        *Flash               `json:"flash,omitempty"`
}

// AdminProjectEditView backs the edit form.
type AdminProjectEditView struct {
	Title        string                 `json:"title"`
	Project      *models.Project        `json:"project"`
	Technologies []*models.Technology   `json:"technologies"`
	Selected     []*models.Technology   `json:"selected_technologies"`
	Images       []*models.ProjectImage `json:"images"`
	Flash        *Flash                 `json:"flash,omitempty"`
}

// AuthFormView backs the login and register forms.
type AuthFormView struct {
	Title string `json:"title"`
	Flash *Flash `json:"flash,omitempty"`
}

// ActionResult is the structured reply of data-response admin actions
// such as image deletion.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
