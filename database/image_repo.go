package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artemisweb/portfolio-backend/models"
)

type ImageRepo struct {
	db *gorm.DB
}

func NewImageRepo(db *gorm.DB) *ImageRepo {
	return &ImageRepo{db}
}

// Add inserts a new gallery image record for a project
func (r *ImageRepo) Add(image *models.ProjectImage) error {
	return r.db.Create(image).Error
}

// FindByProject returns a project's gallery images, newest first
func (r *ImageRepo) FindByProject(projectID uint) ([]*models.ProjectImage, error) {
	var images []*models.ProjectImage
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").Find(&images).Error
	return images, err
}

// FindByID returns one image record, or nil when absent
func (r *ImageRepo) FindByID(id uint) (*models.ProjectImage, error) {
	var image models.ProjectImage
	err := r.db.First(&image, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// Delete removes one image record. Removing the backing file is the
// caller's best-effort concern; the row is the authoritative state.
func (r *ImageRepo) Delete(id uint) error {
	return r.db.Delete(&models.ProjectImage{}, id).Error
}
