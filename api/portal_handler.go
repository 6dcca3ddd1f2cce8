package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/artemisweb/portfolio-backend/database"
	"github.com/artemisweb/portfolio-backend/errs"
	"github.com/artemisweb/portfolio-backend/models"
)

const homePageProjects = 4

type portalHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectRepo    *database.ProjectRepo
	technologyRepo *database.TechnologyRepo
	imageRepo      *database.ImageRepo
}

func newPortalHandler(projectRepo *database.ProjectRepo, technologyRepo *database.TechnologyRepo, imageRepo *database.ImageRepo) portalHandler {
	logger := log.With().Str("handlerName", "portalHandler").Logger()

	return portalHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectRepo:    projectRepo,
		technologyRepo: technologyRepo,
		imageRepo:      imageRepo,
	}
}

// home shows the latest four projects. A store failure degrades to an
// empty list instead of failing the page.
func (h portalHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindLatest(homePageProjects)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to load latest projects, degrading to empty list")
			projects = nil
		}

		h.responder.WriteJSON(w, ProjectListView{
			Title:    "Inicio",
			Projects: projects,
		})
	}
}

// about shows every project, newest first, with the same degrade-on-error
// policy as home.
func (h portalHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindLatest(0)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to load projects, degrading to empty list")
			projects = nil
		}

		h.responder.WriteJSON(w, ProjectListView{
			Title:    "Quién soy",
			Projects: projects,
		})
	}
}

// caseStudies serves one page of seven projects: a featured item plus up
// to six grid cards. Unlike home/about, a store failure here surfaces a
// server error.
func (h portalHandler) caseStudies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r.URL.Query().Get("page"))

		projects, total, err := h.projectRepo.FindPaginated(page, database.CaseStudiesPageSize)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "projects", err))
			return
		}

		feature, grid := splitFeatured(projects)

		h.responder.WriteJSON(w, CaseStudiesView{
			Title:      "Casos de éxito",
			Feature:    feature,
			Projects:   grid,
			Page:       page,
			TotalPages: totalPages(total, database.CaseStudiesPageSize),
		})
	}
}

// caseStudyDetail resolves a project by slug and loads its technologies
// and images concurrently.
func (h portalHandler) caseStudyDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewNotFoundError("project"))
			return
		}

		project, err := h.projectRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project"))
			return
		}

		var (
			technologies []*models.Technology
			images       []*models.ProjectImage
		)

		var g errgroup.Group
		g.Go(func() error {
			var err error
			technologies, err = h.technologyRepo.FindByProject(project.ID)
			return err
		})
		g.Go(func() error {
			var err error
			images, err = h.imageRepo.FindByProject(project.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("load details for", "project", err))
			return
		}

		h.responder.WriteJSON(w, CaseStudyDetailView{
			Title:        project.Title,
			Project:      project,
			Technologies: technologies,
			Images:       images,
		})
	}
}

// staticPage serves an informational page that carries no data beyond
// its title.
func (h portalHandler) staticPage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, PageView{Title: title})
	}
}

func (h portalHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteError(w, errs.NewNotFoundError("page"))
	}
}

// parsePage reads a 1-indexed page number from a query parameter.
// Anything non-numeric or non-positive means page 1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// splitFeatured assigns the first row of a page to the featured slot and
// the remainder to the grid. An empty page has no featured item.
func splitFeatured(projects []*models.Project) (*models.Project, []*models.Project) {
	if len(projects) == 0 {
		return nil, nil
	}
	return projects[0], projects[1:]
}

// totalPages is ceil(total/pageSize), clamped to at least one page even
// when there are no rows.
func totalPages(total int64, pageSize int) int {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}
