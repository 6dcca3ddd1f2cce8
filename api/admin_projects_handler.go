package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/artemisweb/portfolio-backend/database"
	"github.com/artemisweb/portfolio-backend/errs"
	"github.com/artemisweb/portfolio-backend/models"
	"github.com/artemisweb/portfolio-backend/services"
)

const (
	createFormPath = "/admin/projects/create"

	maxUploadMemory = 32 << 20 // 32MB
	maxExtraImages  = 10
)

type adminProjectsHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectRepo    *database.ProjectRepo
	technologyRepo *database.TechnologyRepo
	imageRepo      *database.ImageRepo
	uploads        *services.UploadStore
}

func newAdminProjectsHandler(projectRepo *database.ProjectRepo, technologyRepo *database.TechnologyRepo, imageRepo *database.ImageRepo, uploads *services.UploadStore) adminProjectsHandler {
	logger := log.With().Str("handlerName", "adminProjectsHandler").Logger()

	return adminProjectsHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectRepo:    projectRepo,
		technologyRepo: technologyRepo,
		imageRepo:      imageRepo,
		uploads:        uploads,
	}
}

// projectUploads is the typed result of parsing the multipart upload
// fields once at the boundary: either a field was uploaded and stored,
// or it is absent. Nothing downstream re-checks the raw form.
type projectUploads struct {
	MainImage   *string
	ExtraImages []string
}

// collectUploads stores every uploaded file and returns their public
// paths. Files already stored when a later one fails are left for the
// caller's flash-and-retry flow; the database write never started.
func (h adminProjectsHandler) collectUploads(r *http.Request) (projectUploads, error) {
	var uploads projectUploads

	if r.MultipartForm == nil {
		return uploads, nil
	}

	if headers := r.MultipartForm.File["main_image"]; len(headers) > 0 {
		path, err := h.uploads.Save(headers[0])
		if err != nil {
			return uploads, fmt.Errorf("store main image: %w", err)
		}
		uploads.MainImage = &path
	}

	extra := r.MultipartForm.File["extra_images"]
	if len(extra) > maxExtraImages {
		extra = extra[:maxExtraImages]
	}
	for _, header := range extra {
		path, err := h.uploads.Save(header)
		if err != nil {
			return uploads, fmt.Errorf("store extra image: %w", err)
		}
		uploads.ExtraImages = append(uploads.ExtraImages, path)
	}

	return uploads, nil
}

// index lists every project for the back office.
func (h adminProjectsHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, AdminProjectsView{
			Title:    "Proyectos",
			Operator: ctxSessionUser(r.Context()),
			Projects: projects,
			Flash:    popFlash(w, r),
		})
	}
}

// createForm serves the technology catalog the create form needs.
func (h adminProjectsHandler) createForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologies, err := h.technologyRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "technologies", err))
			return
		}

		h.responder.WriteJSON(w, AdminProjectFormView{
			Title:        "Nuevo Proyecto",
			Technologies: technologies,
			Flash:        popFlash(w, r),
		})
	}
}

// store creates a project with its technology links and extra images in
// one transaction, then redirects back to the project list.
func (h adminProjectsHandler) store() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			setFlash(w, "error", "could not read the project form")
			http.Redirect(w, r, createFormPath, http.StatusSeeOther)
			return
		}

		title := r.PostFormValue("title")
		if title == "" {
			setFlash(w, "error", "title is required")
			http.Redirect(w, r, createFormPath, http.StatusSeeOther)
			return
		}

		uploads, err := h.collectUploads(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to store uploaded files")
			setFlash(w, "error", "could not store the uploaded images")
			http.Redirect(w, r, createFormPath, http.StatusSeeOther)
			return
		}

		project := models.Project{
			Client:      r.PostFormValue("client"),
			Title:       title,
			Description: optionalText(r.PostFormValue("description")),
			Resume:      optionalText(r.PostFormValue("resume")),
			URL:         optionalText(r.PostFormValue("url")),
			MainImage:   uploads.MainImage,
		}

		technologyIDs := parseIDList(r.PostForm["technologies"])
		images := make([]models.ProjectImage, 0, len(uploads.ExtraImages))
		for _, path := range uploads.ExtraImages {
			images = append(images, models.ProjectImage{ImagePath: path})
		}

		if err := h.projectRepo.CreateWithAssociations(&project, technologyIDs, images); err != nil {
			h.logger.Error().Err(err).Msg("failed to create project")
			setFlash(w, "error", "could not create the project")
			http.Redirect(w, r, createFormPath, http.StatusSeeOther)
			return
		}

		setFlash(w, "success", "project created")
		http.Redirect(w, r, projectsPath, http.StatusSeeOther)
	}
}

// editForm serves one project with its images and current technology
// selection.
func (h adminProjectsHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "projectID"))
		if !ok {
			setFlash(w, "error", "project not found")
			http.Redirect(w, r, projectsPath, http.StatusSeeOther)
			return
		}

		project, err := h.projectRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			setFlash(w, "error", "project not found")
			http.Redirect(w, r, projectsPath, http.StatusSeeOther)
			return
		}

		technologies, err := h.technologyRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "technologies", err))
			return
		}
		selected, err := h.technologyRepo.FindByProject(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("load technologies for", "project", err))
			return
		}
		images, err := h.imageRepo.FindByProject(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("load images for", "project", err))
			return
		}

		h.responder.WriteJSON(w, AdminProjectEditView{
			Title:        "Editar Proyecto",
			Project:      project,
			Technologies: technologies,
			Selected:     selected,
			Images:       images,
			Flash:        popFlash(w, r),
		})
	}
}

// update rewrites a project, keeping the existing main image when no new
// upload arrived, replacing technology links wholesale and appending any
// newly uploaded images.
func (h adminProjectsHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "projectID"))
		if !ok {
			setFlash(w, "error", "project not found")
			http.Redirect(w, r, projectsPath, http.StatusSeeOther)
			return
		}
		editPath := fmt.Sprintf("/admin/projects/%d/edit", id)

		existing, err := h.projectRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			setFlash(w, "error", "project not found")
			http.Redirect(w, r, projectsPath, http.StatusSeeOther)
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			setFlash(w, "error", "could not read the project form")
			http.Redirect(w, r, editPath, http.StatusSeeOther)
			return
		}

		title := r.PostFormValue("title")
		if title == "" {
			setFlash(w, "error", "title is required")
			http.Redirect(w, r, editPath, http.StatusSeeOther)
			return
		}

		uploads, err := h.collectUploads(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to store uploaded files")
			setFlash(w, "error", "could not store the uploaded images")
			http.Redirect(w, r, editPath, http.StatusSeeOther)
			return
		}

		// Keep the prior main image unless a new one was uploaded.
		mainImage := existing.MainImage
		if uploads.MainImage != nil {
			mainImage = uploads.MainImage
		}

		project := models.Project{
			ID:          id,
			Client:      r.PostFormValue("client"),
			Title:       title,
			Description: optionalText(r.PostFormValue("description")),
			Resume:      optionalText(r.PostFormValue("resume")),
			URL:         optionalText(r.PostFormValue("url")),
			MainImage:   mainImage,
		}

		technologyIDs := parseIDList(r.PostForm["technologies"])
		newImages := make([]models.ProjectImage, 0, len(uploads.ExtraImages))
		for _, path := range uploads.ExtraImages {
			newImages = append(newImages, models.ProjectImage{ImagePath: path})
		}

		if err := h.projectRepo.UpdateWithAssociations(&project, technologyIDs, newImages); err != nil {
			h.logger.Error().Err(err).Msg("failed to update project")
			setFlash(w, "error", "could not update the project")
			http.Redirect(w, r, editPath, http.StatusSeeOther)
			return
		}

		setFlash(w, "success", "project updated")
		http.Redirect(w, r, projectsPath, http.StatusSeeOther)
	}
}

// destroy removes a project along with its association rows and image
// records, then removes the orphaned files best-effort.
func (h adminProjectsHandler) destroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "projectID"))
		if !ok {
			setFlash(w, "error", "project not found")
			http.Redirect(w, r, projectsPath, http.StatusSeeOther)
			return
		}

		orphanedPaths, err := h.projectRepo.Delete(id)
		if err != nil {
			h.logger.Error().Err(err).Uint("projectID", id).Msg("failed to delete project")
			setFlash(w, "error", "could not delete the project")
			http.Redirect(w, r, projectsPath, http.StatusSeeOther)
			return
		}

		for _, path := range orphanedPaths {
			h.uploads.Remove(path)
		}

		setFlash(w, "success", "project deleted")
		http.Redirect(w, r, projectsPath, http.StatusSeeOther)
	}
}

// destroyImage deletes one gallery image. Unlike the other admin
// actions, it answers with a structured JSON result instead of a
// redirect. The image must belong to the stated project, which guards
// against cross-project deletion through guessed identifiers.
func (h adminProjectsHandler) destroyImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, okProject := parseID(chi.URLParam(r, "projectID"))
		imageID, okImage := parseID(chi.URLParam(r, "imageID"))
		if !okProject || !okImage {
			w.WriteHeader(http.StatusNotFound)
			h.responder.WriteJSON(w, ActionResult{Success: false, Message: "image not found"})
			return
		}

		image, err := h.imageRepo.FindByID(imageID)
		if err != nil {
			h.logger.Error().Err(err).Uint("imageID", imageID).Msg("failed to look up image")
			w.WriteHeader(http.StatusInternalServerError)
			h.responder.WriteJSON(w, ActionResult{Success: false, Message: "could not delete the image"})
			return
		}
		if image == nil || image.ProjectID != projectID {
			h.logger.Warn().Uint("imageID", imageID).Uint("projectID", projectID).Msg("image does not belong to project")
			w.WriteHeader(http.StatusNotFound)
			h.responder.WriteJSON(w, ActionResult{Success: false, Message: "image not found"})
			return
		}

		h.uploads.Remove(image.ImagePath)

		if err := h.imageRepo.Delete(imageID); err != nil {
			h.logger.Error().Err(err).Uint("imageID", imageID).Msg("failed to delete image record")
			w.WriteHeader(http.StatusInternalServerError)
			h.responder.WriteJSON(w, ActionResult{Success: false, Message: "could not delete the image"})
			return
		}

		h.responder.WriteJSON(w, ActionResult{Success: true, Message: "image deleted"})
	}
}

// optionalText maps an empty form value to an absent column
func optionalText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseIDList keeps the valid numeric ids from a multi-valued form field
func parseIDList(values []string) []uint {
	var ids []uint
	for _, value := range values {
		if id, ok := parseID(value); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
