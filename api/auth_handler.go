package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/artemisweb/portfolio-backend/database"
	"github.com/artemisweb/portfolio-backend/models"
)

const (
	registerPath = "/admin/auth/register"
	projectsPath = "/admin/projects"

	// One message for both unknown email and wrong password, so the
	// response never reveals which one failed.
	badCredentialsMessage = "invalid email or password"
)

// dummyHash keeps the unknown-email path doing the same bcrypt work as
// a wrong-password attempt.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	sessions  sessionManager
}

func newAuthHandler(userRepo *database.UserRepo, sessions sessionManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		sessions:  sessions,
	}
}

func (h authHandler) loginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, AuthFormView{
			Title: "Iniciar sesión",
			Flash: popFlash(w, r),
		})
	}
}

func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			setFlash(w, "error", badCredentialsMessage)
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		email := r.PostFormValue("email")
		password := r.PostFormValue("password")

		user, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to look up user for login")
			setFlash(w, "error", "could not sign in, try again")
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		hash := dummyHash
		if user != nil {
			hash = []byte(user.PasswordHash)
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || user == nil {
			setFlash(w, "error", badCredentialsMessage)
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		sessionUser := SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}
		if err := h.sessions.Issue(w, sessionUser); err != nil {
			h.logger.Error().Err(err).Msg("failed to issue session")
			setFlash(w, "error", "could not sign in, try again")
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, projectsPath, http.StatusSeeOther)
	}
}

func (h authHandler) registerForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, AuthFormView{
			Title: "Registro",
			Flash: popFlash(w, r),
		})
	}
}

func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			setFlash(w, "error", "malformed registration form")
			http.Redirect(w, r, registerPath, http.StatusSeeOther)
			return
		}

		name := r.PostFormValue("name")
		email := r.PostFormValue("email")
		password := r.PostFormValue("password")
		if name == "" || email == "" || password == "" {
			setFlash(w, "error", "name, email and password are required")
			http.Redirect(w, r, registerPath, http.StatusSeeOther)
			return
		}

		existing, err := h.userRepo.FindByEmail(email)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to look up user for registration")
			setFlash(w, "error", "could not register, try again")
			http.Redirect(w, r, registerPath, http.StatusSeeOther)
			return
		}
		if existing != nil {
			setFlash(w, "error", "email is already registered")
			http.Redirect(w, r, registerPath, http.StatusSeeOther)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to hash password")
			setFlash(w, "error", "could not register, try again")
			http.Redirect(w, r, registerPath, http.StatusSeeOther)
			return
		}

		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         "user",
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.logger.Error().Err(err).Msg("failed to create user")
			setFlash(w, "error", "could not register, try again")
			http.Redirect(w, r, registerPath, http.StatusSeeOther)
			return
		}

		setFlash(w, "success", "account created, you can sign in now")
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.Clear(w)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	}
}
