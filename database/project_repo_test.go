package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/artemisweb/portfolio-backend/models"
)

type ProjectRepoTestSuite struct {
	RepoTestSuite
}

func (s *ProjectRepoTestSuite) TestCreateDerivesSlug() {
	project := &models.Project{
		Client: "Taller Azul",
		Title:  "E-commerce Artesanías!!",
	}
	s.Require().NoError(s.projectRepo.Create(project))
	s.Require().NotZero(project.ID)
	s.Require().Equal("e-commerce-artesanias", project.Slug)

	// Same title, same slug, deterministically
	s.Require().Equal("e-commerce-artesanias", Slugify("E-commerce Artesanías!!"))
}

func (s *ProjectRepoTestSuite) TestFindByIDAbsenceIsNotAnError() {
	project, err := s.projectRepo.FindByID(999)
	s.Require().NoError(err)
	s.Require().Nil(project)
}

func (s *ProjectRepoTestSuite) TestFindBySlug() {
	created := s.createProjectAt("Plataforma Logística", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	found, err := s.projectRepo.FindBySlug(created.Slug)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Require().Equal(created.ID, found.ID)

	missing, err := s.projectRepo.FindBySlug("no-such-project")
	s.Require().NoError(err)
	s.Require().Nil(missing)
}

func (s *ProjectRepoTestSuite) TestFindLatestOrdersNewestFirst() {
	s.createProjects(6)

	latest, err := s.projectRepo.FindLatest(4)
	s.Require().NoError(err)
	s.Require().Len(latest, 4)
	s.Require().Equal("Project 06", latest[0].Title)
	s.Require().Equal("Project 03", latest[3].Title)

	// Non-positive limit returns everything
	all, err := s.projectRepo.FindLatest(0)
	s.Require().NoError(err)
	s.Require().Len(all, 6)
	s.Require().Equal("Project 06", all[0].Title)
}

func (s *ProjectRepoTestSuite) TestFindPaginated() {
	s.createProjects(10)

	page1, total, err := s.projectRepo.FindPaginated(1, 7)
	s.Require().NoError(err)
	s.Require().EqualValues(10, total)
	s.Require().Len(page1, 7)
	s.Require().Equal("Project 10", page1[0].Title)

	page2, total, err := s.projectRepo.FindPaginated(2, 7)
	s.Require().NoError(err)
	s.Require().EqualValues(10, total)
	s.Require().Len(page2, 3)
	s.Require().Equal("Project 03", page2[0].Title)
}

func (s *ProjectRepoTestSuite) TestFindPaginatedEmpty() {
	rows, total, err := s.projectRepo.FindPaginated(1, 7)
	s.Require().NoError(err)
	s.Require().EqualValues(0, total)
	s.Require().Empty(rows)
}

func (s *ProjectRepoTestSuite) TestUpdateRederivesSlugAndKeepsGivenMainImage() {
	created := s.createProjectAt("Tienda Online", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	mainImage := "/uploads/cover.png"
	s.Require().NoError(s.db.Model(created).Update("main_image", mainImage).Error)

	updated := &models.Project{
		ID:        created.ID,
		Client:    created.Client,
		Title:     "Tienda Online Renovada",
		MainImage: &mainImage,
	}
	s.Require().NoError(s.projectRepo.Update(updated))

	found, err := s.projectRepo.FindByID(created.ID)
	s.Require().NoError(err)
	s.Require().Equal("tienda-online-renovada", found.Slug)
	s.Require().NotNil(found.MainImage)
	s.Require().Equal(mainImage, *found.MainImage)
}

func (s *ProjectRepoTestSuite) TestUpdateCanClearOptionalFields() {
	description := "old description"
	created := s.createProjectAt("Proyecto Breve", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.db.Model(created).Update("description", description).Error)

	updated := &models.Project{
		ID:     created.ID,
		Client: created.Client,
		Title:  created.Title,
	}
	s.Require().NoError(s.projectRepo.Update(updated))

	found, err := s.projectRepo.FindByID(created.ID)
	s.Require().NoError(err)
	s.Require().Nil(found.Description)
}

func (s *ProjectRepoTestSuite) TestCreateWithAssociations() {
	react := s.createTechnology("React")
	golang := s.createTechnology("Go")

	project := &models.Project{Client: "Acme", Title: "Panel de Control"}
	images := []models.ProjectImage{
		{ImagePath: "/uploads/one.png"},
		{ImagePath: "/uploads/two.png"},
	}
	s.Require().NoError(s.projectRepo.CreateWithAssociations(project, []uint{react.ID, golang.ID}, images))
	s.Require().NotZero(project.ID)

	s.Require().ElementsMatch([]uint{react.ID, golang.ID}, s.linkedTechnologyIDs(project.ID))

	stored, err := s.imageRepo.FindByProject(project.ID)
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
}

func (s *ProjectRepoTestSuite) TestCreateWithAssociationsRollsBackOnFailure() {
	technology := s.createTechnology("Vue")
	s.createProjectAt("Proyecto Original", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	// Duplicate title means duplicate slug, which violates the unique
	// index and must roll back the whole write.
	project := &models.Project{Client: "Acme", Title: "Proyecto Original"}
	err := s.projectRepo.CreateWithAssociations(project, []uint{technology.ID}, nil)
	s.Require().Error(err)

	var count int64
	s.Require().NoError(s.db.Model(&models.Project{}).Count(&count).Error)
	s.Require().EqualValues(1, count)

	var links int64
	s.Require().NoError(s.db.Model(&models.ProjectTechnology{}).Count(&links).Error)
	s.Require().EqualValues(0, links)
}

func (s *ProjectRepoTestSuite) TestUpdateWithAssociationsAppendsImages() {
	project := &models.Project{Client: "Acme", Title: "Galería"}
	s.Require().NoError(s.projectRepo.CreateWithAssociations(project, nil, []models.ProjectImage{{ImagePath: "/uploads/a.png"}}))

	updated := &models.Project{
		ID:     project.ID,
		Client: project.Client,
		Title:  project.Title,
	}
	err := s.projectRepo.UpdateWithAssociations(updated, nil, []models.ProjectImage{{ImagePath: "/uploads/b.png"}})
	s.Require().NoError(err)

	images, err := s.imageRepo.FindByProject(project.ID)
	s.Require().NoError(err)
	s.Require().Len(images, 2)
}

func (s *ProjectRepoTestSuite) TestDeleteRemovesAssociationsAndReportsOrphanedFiles() {
	technology := s.createTechnology("Svelte")

	mainImage := "/uploads/main.png"
	project := &models.Project{Client: "Acme", Title: "Proyecto Completo", MainImage: &mainImage}
	images := []models.ProjectImage{{ImagePath: "/uploads/extra.png"}}
	s.Require().NoError(s.projectRepo.CreateWithAssociations(project, []uint{technology.ID}, images))

	orphanedPaths, err := s.projectRepo.Delete(project.ID)
	s.Require().NoError(err)
	s.Require().ElementsMatch([]string{"/uploads/extra.png", "/uploads/main.png"}, orphanedPaths)

	found, err := s.projectRepo.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Nil(found)

	var links int64
	s.Require().NoError(s.db.Model(&models.ProjectTechnology{}).Count(&links).Error)
	s.Require().EqualValues(0, links)

	var imageRows int64
	s.Require().NoError(s.db.Model(&models.ProjectImage{}).Count(&imageRows).Error)
	s.Require().EqualValues(0, imageRows)

	// Catalog entries are shared, never deleted with a project
	technologies, err := s.technologyRepo.FindAll()
	s.Require().NoError(err)
	s.Require().Len(technologies, 1)
}

func (s *ProjectRepoTestSuite) TestDeleteMissingProjectIsANoOp() {
	orphanedPaths, err := s.projectRepo.Delete(12345)
	s.Require().NoError(err)
	s.Require().Empty(orphanedPaths)
}

func TestProjectRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepoTestSuite))
}
