package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/artemisweb/portfolio-backend/database"
	"github.com/artemisweb/portfolio-backend/models"
	"github.com/artemisweb/portfolio-backend/services"
)

type testEnv struct {
	db       *gorm.DB
	database database.Database
	router   *chi.Mux
	sessions sessionManager
}

// newTestEnv wires the full route surface over an in-memory database
// and a throwaway upload directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	err = db.AutoMigrate(
		&models.Project{},
		&models.Technology{},
		&models.ProjectTechnology{},
		&models.ProjectImage{},
		&models.User{},
	)
	require.NoError(t, err)

	currentDB := database.New(db)
	sessions := newSessionManager("test-secret")
	uploads := services.NewUploadStore(t.TempDir())
	handlers := initializeHandlers(currentDB, sessions, uploads)

	router := chi.NewRouter()
	setupPortalRoutes(router, handlers)
	setupAdminRoutes(router, handlers, newAuthMiddleware(sessions))

	return &testEnv{
		db:       db,
		database: currentDB,
		router:   router,
		sessions: sessions,
	}
}

// closeDB force-closes the underlying connection so repository calls
// fail, simulating a store outage.
func (e *testEnv) closeDB(t *testing.T) {
	t.Helper()
	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func (e *testEnv) createProjectAt(t *testing.T, title string, createdAt time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		Client:    "Test Client",
		Title:     title,
		Slug:      database.Slugify(title),
		CreatedAt: createdAt,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	recorder := httptest.NewRecorder()
	err := e.sessions.Issue(recorder, SessionUser{ID: 1, Name: "Ana", Email: "ana@example.com", Role: "admin"})
	require.NoError(t, err)

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

// multipartBody builds a multipart form holding only text fields.
func multipartBody(t *testing.T, fields map[string][]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, value := range values {
			require.NoError(t, writer.WriteField(name, value))
		}
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

// findCookie returns the named cookie from a response, or nil.
func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
