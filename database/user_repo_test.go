package database

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/artemisweb/portfolio-backend/models"
)

type UserRepoTestSuite struct {
	RepoTestSuite
}

func (s *UserRepoTestSuite) TestAddAndFindByEmail() {
	user := &models.User{
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		Role:         "admin",
	}
	s.Require().NoError(s.userRepo.Add(user))
	s.Require().NotZero(user.ID)

	found, err := s.userRepo.FindByEmail("ana@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Require().Equal(user.ID, found.ID)
	s.Require().Equal("admin", found.Role)
}

func (s *UserRepoTestSuite) TestFindByEmailAbsenceIsNotAnError() {
	user, err := s.userRepo.FindByEmail("nobody@example.com")
	s.Require().NoError(err)
	s.Require().Nil(user)
}

func (s *UserRepoTestSuite) TestDuplicateEmailRejected() {
	user := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	s.Require().NoError(s.userRepo.Add(user))

	duplicate := &models.User{Name: "Otra Ana", Email: "ana@example.com", PasswordHash: "y"}
	s.Require().Error(s.userRepo.Add(duplicate))
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}
