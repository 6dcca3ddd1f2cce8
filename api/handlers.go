package api

import (
	"github.com/artemisweb/portfolio-backend/database"
	"github.com/artemisweb/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, sessions sessionManager, uploads *services.UploadStore) *routeHandlers {
	return &routeHandlers{
		portalHandler: newPortalHandler(database.ProjectRepo(), database.TechnologyRepo(), database.ImageRepo()),
		authHandler:   newAuthHandler(database.UserRepo(), sessions),
		adminProjectsHandler: newAdminProjectsHandler(
			database.ProjectRepo(),
			database.TechnologyRepo(),
			database.ImageRepo(),
			uploads,
		),
	}
}
