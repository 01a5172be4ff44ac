package users

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"adoptme/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// DocumentStore guarda el contenido de un documento subido y devuelve
// la referencia de almacenamiento (nombre de archivo en disco).
type DocumentStore interface {
	SaveDocument(originalName string, r io.Reader) (string, error)
}

// MaxDocumentUploads limita la cantidad de archivos por request.
const MaxDocumentUploads = 5

func RegisterRoutes(r chi.Router, svc *Service, docs DocumentStore) {
	r.Route("/api/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{uid}", getUserHandler(svc))
		ur.Put("/{uid}", updateUserHandler(svc))
		ur.Delete("/{uid}", deleteUserHandler(svc))
		ur.Post("/{uid}/documents", uploadDocumentsHandler(svc, docs))
	})
}

type userResponse struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	Pets           []string   `json:"pets"`
	Documents      []Document `json:"documents"`
	LastConnection time.Time  `json:"last_connection"`
}

type updateUserRequest struct {
	// Punteros para update parcial: nil = no tocar.
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			web.Err(w, http.StatusInternalServerError, "Internal error")
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toResponse(u))
		}
		web.OK(w, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			web.Err(w, http.StatusNotFound, "User not found")
			return
		}
		web.OK(w, toResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		_, err := svc.Update(r.Context(), chi.URLParam(r, "uid"), UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			Role:      req.Role,
		})
		switch {
		case err == nil:
			web.OKMessage(w, "User updated")
		case errors.Is(err, ErrNotFound):
			web.Err(w, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrEmailTaken):
			web.Err(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, ErrInvalidInput):
			web.Err(w, http.StatusBadRequest, "Incomplete values")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "uid"))
		switch {
		case err == nil:
			web.OKMessage(w, "User deleted")
		case errors.Is(err, ErrNotFound):
			web.Err(w, http.StatusNotFound, "User not found")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

func uploadDocumentsHandler(svc *Service, store DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			web.Err(w, http.StatusBadRequest, "No files uploaded")
			return
		}

		files := r.MultipartForm.File["documents"]
		if len(files) == 0 {
			web.Err(w, http.StatusBadRequest, "No files uploaded")
			return
		}
		if len(files) > MaxDocumentUploads {
			web.Err(w, http.StatusBadRequest, "Too many files")
			return
		}

		docs := make([]Document, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				web.Err(w, http.StatusInternalServerError, "Internal error")
				return
			}
			ref, err := store.SaveDocument(fh.Filename, f)
			_ = f.Close()
			if err != nil {
				web.Err(w, http.StatusInternalServerError, "Internal error")
				return
			}
			docs = append(docs, Document{Name: fh.Filename, Reference: "/documents/" + ref})
		}

		if err := svc.AppendDocuments(r.Context(), chi.URLParam(r, "uid"), docs); err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Err(w, http.StatusNotFound, "User not found")
				return
			}
			web.Err(w, http.StatusInternalServerError, "Internal error")
			return
		}

		web.OKMessagePayload(w, "Documents uploaded successfully", map[string]any{
			"uploadedFiles": len(docs),
			"documents":     docs,
		})
	}
}

// toResponse serializa sin el hash de password y con arrays nunca null.
func toResponse(u User) userResponse {
	pets := u.Pets
	if pets == nil {
		pets = []string{}
	}
	docs := u.Documents
	if docs == nil {
		docs = []Document{}
	}
	return userResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           string(u.Role),
		Pets:           pets,
		Documents:      docs,
		LastConnection: u.LastConnection,
	}
}
