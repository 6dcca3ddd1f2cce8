package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupPortalRoutes wires the public read surface
func setupPortalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		portal := handlers.portalHandler
		r.Get("/", portal.home())
		r.Get("/quien-soy", portal.about())
		r.Get("/casos-exito", portal.caseStudies())
		r.Get("/casos-exito/{slug}", portal.caseStudyDetail())
		r.Get("/como-trabajo", portal.staticPage("Cómo trabajo"))
		r.Get("/contacto", portal.staticPage("Contacto"))
		r.Get("/club-empresarial", portal.staticPage("Club empresarial"))
		r.Get("/oferta-septiembre", portal.staticPage("Oferta septiembre"))

		r.NotFound(portal.notFound())
	})
}

// setupAdminRoutes wires the back office: open auth endpoints plus the
// session-gated project CRUD
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		auth := handlers.authHandler
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", auth.loginForm())
			r.Post("/login", auth.login())
			r.Get("/register", auth.registerForm())
			r.Post("/register", auth.register())
			r.Get("/logout", auth.logout())
		})

		projects := handlers.adminProjectsHandler
		r.Route("/projects", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/", projects.index())
			r.Get("/create", projects.createForm())
			r.Post("/", projects.store())

			// Image deletion is matched before the projectID routes so
			// the nested path never falls into the edit handlers.
			r.Post("/{projectID}/images/{imageID}/delete", projects.destroyImage())

			r.Get("/{projectID}/edit", projects.editForm())
			r.Post("/{projectID}/edit", projects.update())
			r.Post("/{projectID}/delete", projects.destroy())
		})
	})
}

// setupStaticRoutes serves the public assets area, including uploads
func setupStaticRoutes(r chi.Router, publicDir string) {
	fileServer := http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir)))
	r.Handle("/public/*", fileServer)
}
