package database

import (
	"gorm.io/gorm"

	"github.com/artemisweb/portfolio-backend/models"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// FindAll returns the whole technology catalog ordered alphabetically
func (r *TechnologyRepo) FindAll() ([]*models.Technology, error) {
	var technologies []*models.Technology
	err := r.db.Order("name ASC").Find(&technologies).Error
	return technologies, err
}

// FindByProject returns the technologies linked to one project
func (r *TechnologyRepo) FindByProject(projectID uint) ([]*models.Technology, error) {
	var technologies []*models.Technology
	err := r.db.
		Joins("JOIN project_technologies pt ON pt.technology_id = technologies.id").
		Where("pt.project_id = ?", projectID).
		Order("technologies.name ASC").
		Find(&technologies).Error
	return technologies, err
}

// Add inserts a new catalog entry
func (r *TechnologyRepo) Add(technology *models.Technology) error {
	return r.db.Create(technology).Error
}

// SetForProject replaces a project's technology links with exactly the
// given set. An empty or nil list clears every link.
func (r *TechnologyRepo) SetForProject(projectID uint, technologyIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return replaceTechnologyLinks(tx, projectID, technologyIDs)
	})
}

// replaceTechnologyLinks is the shared clear-then-insert step, also used
// inside project create/update transactions.
func replaceTechnologyLinks(tx *gorm.DB, projectID uint, technologyIDs []uint) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}
	for _, technologyID := range technologyIDs {
		link := models.ProjectTechnology{ProjectID: projectID, TechnologyID: technologyID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
