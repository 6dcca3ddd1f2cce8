package database

import (
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/artemisweb/portfolio-backend/models"
)

// CaseStudiesPageSize is how many projects one case-studies page holds:
// one featured item plus up to six grid cards.
const CaseStudiesPageSize = 7

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// Slugify derives the URL identifier stored alongside a project title.
// Lower-cased, transliterated, non-alphanumeric runs collapsed to single
// dashes with no leading or trailing separator. Deterministic: the same
// title always produces the same slug.
func Slugify(title string) string {
	return slug.Make(title)
}

// FindAll returns every project, newest first
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("created_at DESC, id DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns the project with the given id, or nil when absent
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns the project with the given slug, or nil when absent
func (r *ProjectRepo) FindBySlug(slugValue string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("slug = ?", slugValue).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindLatest returns up to limit most recent projects. A non-positive
// limit returns all of them, still newest first.
func (r *ProjectRepo) FindLatest(limit int) ([]*models.Project, error) {
	var projects []*models.Project
	query := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// FindPaginated returns one 1-indexed page of projects plus the total
// row count across all pages.
func (r *ProjectRepo) FindPaginated(page, pageSize int) ([]*models.Project, int64, error) {
	offset := (page - 1) * pageSize

	var projects []*models.Project
	err := r.db.Order("created_at DESC, id DESC").
		Limit(pageSize).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Create inserts a new project, deriving its slug from the title
func (r *ProjectRepo) Create(project *models.Project) error {
	project.Slug = Slugify(project.Title)
	return r.db.Create(project).Error
}

// Update rewrites every mutable column of an existing project and
// re-derives the slug from the (possibly changed) title. MainImage must
// already carry the resolved value: the caller keeps the prior path when
// no new upload was supplied.
func (r *ProjectRepo) Update(project *models.Project) error {
	project.Slug = Slugify(project.Title)
	return r.db.Model(&models.Project{ID: project.ID}).Updates(map[string]interface{}{
		"client":      project.Client,
		"title":       project.Title,
		"slug":        project.Slug,
		"description": project.Description,
		"resume":      project.Resume,
		"main_image":  project.MainImage,
		"url":         project.URL,
	}).Error
}

// CreateWithAssociations inserts a project plus its technology links and
// extra gallery images as one atomic unit. A failure partway rolls the
// whole write back.
func (r *ProjectRepo) CreateWithAssociations(project *models.Project, technologyIDs []uint, images []models.ProjectImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		project.Slug = Slugify(project.Title)
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if err := replaceTechnologyLinks(tx, project.ID, technologyIDs); err != nil {
			return err
		}
		for i := range images {
			images[i].ProjectID = project.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithAssociations rewrites a project, replaces its technology
// links wholesale and appends newly uploaded gallery images, atomically.
// Previously attached images are never removed here.
func (r *ProjectRepo) UpdateWithAssociations(project *models.Project, technologyIDs []uint, newImages []models.ProjectImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		project.Slug = Slugify(project.Title)
		err := tx.Model(&models.Project{ID: project.ID}).Updates(map[string]interface{}{
			"client":      project.Client,
			"title":       project.Title,
			"slug":        project.Slug,
			"description": project.Description,
			"resume":      project.Resume,
			"main_image":  project.MainImage,
			"url":         project.URL,
		}).Error
		if err != nil {
			return err
		}
		if err := replaceTechnologyLinks(tx, project.ID, technologyIDs); err != nil {
			return err
		}
		for i := range newImages {
			newImages[i].ProjectID = project.ID
			if err := tx.Create(&newImages[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a project together with its technology links and image
// rows so no orphaned association or child rows survive. It returns the
// public paths of files the caller should remove best-effort after the
// transaction commits (gallery images plus the main image, if any).
func (r *ProjectRepo) Delete(id uint) ([]string, error) {
	var orphanedPaths []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var images []models.ProjectImage
		if err := tx.Where("project_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		for _, img := range images {
			orphanedPaths = append(orphanedPaths, img.ImagePath)
		}
		if project.MainImage != nil && *project.MainImage != "" {
			orphanedPaths = append(orphanedPaths, *project.MainImage)
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return orphanedPaths, nil
}
