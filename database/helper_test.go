package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/artemisweb/portfolio-backend/models"
)

// RepoTestSuite provides a base test suite backed by an in-memory
// database, one fresh instance per test.
type RepoTestSuite struct {
	suite.Suite
	db             *gorm.DB
	projectRepo    *ProjectRepo
	technologyRepo *TechnologyRepo
	imageRepo      *ImageRepo
	userRepo       *UserRepo
}

func (s *RepoTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.Project{},
		&models.Technology{},
		&models.ProjectTechnology{},
		&models.ProjectImage{},
		&models.User{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.projectRepo = NewProjectRepo(db)
	s.technologyRepo = NewTechnologyRepo(db)
	s.imageRepo = NewImageRepo(db)
	s.userRepo = NewUserRepo(db)
}

func (s *RepoTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

// createProjectAt inserts a project with an explicit creation time so
// ordering assertions do not depend on clock resolution.
func (s *RepoTestSuite) createProjectAt(title string, createdAt time.Time) *models.Project {
	project := &models.Project{
		Client:    "Test Client",
		Title:     title,
		Slug:      Slugify(title),
		CreatedAt: createdAt,
	}
	s.Require().NoError(s.db.Create(project).Error)
	return project
}

func (s *RepoTestSuite) createProjects(count int) []*models.Project {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	projects := make([]*models.Project, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("Project %02d", i+1)
		projects = append(projects, s.createProjectAt(title, base.Add(time.Duration(i)*time.Hour)))
	}
	return projects
}

func (s *RepoTestSuite) createTechnology(name string) *models.Technology {
	technology := &models.Technology{Name: name}
	s.Require().NoError(s.technologyRepo.Add(technology))
	return technology
}

func (s *RepoTestSuite) linkedTechnologyIDs(projectID uint) []uint {
	technologies, err := s.technologyRepo.FindByProject(projectID)
	s.Require().NoError(err)

	ids := make([]uint, 0, len(technologies))
	for _, technology := range technologies {
		ids = append(ids, technology.ID)
	}
	return ids
}
