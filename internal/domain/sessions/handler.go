package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"adoptme/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// UnprotectedCookieName es la cookie del flujo de debug sin protección.
const UnprotectedCookieName = "unprotectedCookie"

// CookieConfig viene de la configuración de arranque: nada de leer env acá.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
}

func RegisterRoutes(r chi.Router, svc *Service, cookies CookieConfig) {
	r.Route("/api/sessions", func(sr chi.Router) {
		sr.Post("/register", registerHandler(svc))
		sr.Post("/login", loginHandler(svc, cookies.Name, cookies.MaxAge))
		sr.Get("/current", currentHandler(svc, cookies.Name))
		sr.Post("/logout", logoutHandler(svc, cookies.Name))

		// Variantes de debug heredadas: otra cookie, y current devuelve
		// el registro completo del usuario en vez de los claims.
		sr.Post("/unprotectedlogin", unprotectedLoginHandler(svc, cookies.MaxAge))
		sr.Get("/unprotectedcurrent", unprotectedCurrentHandler(svc))
	})
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		id, err := svc.Register(r.Context(), RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		switch {
		case err == nil:
			web.OK(w, id)
		case errors.Is(err, ErrIncompleteValues):
			web.Err(w, http.StatusBadRequest, "Incomplete values")
		case errors.Is(err, ErrUserExists):
			web.Err(w, http.StatusBadRequest, "User already exists")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

func loginHandler(svc *Service, cookieName string, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
			})
			web.OKMessage(w, "Logged in")
		case errors.Is(err, ErrIncompleteValues):
			web.Err(w, http.StatusBadRequest, "Incomplete values")
		case errors.Is(err, ErrUserNotFound):
			web.Err(w, http.StatusNotFound, "User doesn't exist")
		case errors.Is(err, ErrIncorrectPassword):
			web.Err(w, http.StatusBadRequest, "Incorrect password")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

func unprotectedLoginHandler(svc *Service, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		token, err := svc.UnprotectedLogin(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			http.SetCookie(w, &http.Cookie{
				Name:     UnprotectedCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
			})
			web.OKMessage(w, "Unprotected Logged in")
		case errors.Is(err, ErrIncompleteValues):
			web.Err(w, http.StatusBadRequest, "Incomplete values")
		case errors.Is(err, ErrUserNotFound):
			web.Err(w, http.StatusNotFound, "User doesn't exist")
		case errors.Is(err, ErrIncorrectPassword):
			web.Err(w, http.StatusBadRequest, "Incorrect password")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

func unprotectedCurrentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(UnprotectedCookieName)
		if err != nil || c.Value == "" {
			web.Err(w, http.StatusUnauthorized, "No token provided")
			return
		}

		u, err := svc.UnprotectedCurrent(r.Context(), c.Value)
		if err != nil {
			web.Err(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		web.OK(w, map[string]any{
			"id":              u.ID,
			"first_name":      u.FirstName,
			"last_name":       u.LastName,
			"email":           u.Email,
			"role":            u.Role,
			"pets":            u.Pets,
			"documents":       u.Documents,
			"last_connection": u.LastConnection,
		})
	}
}

func currentHandler(svc *Service, cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(cookieName)
		if err != nil || c.Value == "" {
			web.Err(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := svc.Current(c.Value)
		if err != nil {
			web.Err(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		web.OK(w, map[string]any{
			"id":    claims.UserID,
			"email": claims.Email,
			"role":  claims.Role,
			"name":  claims.Name,
		})
	}
}

// El logout siempre reporta éxito, haya o no sesión válida.
func logoutHandler(svc *Service, cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(cookieName); err == nil {
			svc.Logout(r.Context(), c.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:   cookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		web.OKMessage(w, "Logged out")
	}
}
