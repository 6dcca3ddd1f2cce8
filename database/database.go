package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo    *ProjectRepo
	technologyRepo *TechnologyRepo
	imageRepo      *ImageRepo
	userRepo       *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:    NewProjectRepo(db),
		technologyRepo: NewTechnologyRepo(db),
		imageRepo:      NewImageRepo(db),
		userRepo:       NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) ImageRepo() *ImageRepo {
	return d.imageRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
