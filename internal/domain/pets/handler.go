package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"adoptme/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// ImageStore guarda la imagen subida y devuelve la referencia de almacenamiento.
type ImageStore interface {
	SavePetImage(originalName string, r io.Reader) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, images ImageStore) {
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))
		pr.Post("/withimage", createPetWithImageHandler(svc, images))
		pr.Put("/{pid}", updatePetHandler(svc))
		pr.Delete("/{pid}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name      string `json:"name"`
	Specie    string `json:"specie"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
}

type updatePetRequest struct {
	// Punteros para update parcial: nil = no tocar.
	Name      *string `json:"name"`
	Specie    *string `json:"specie"`
	BirthDate *string `json:"birthDate"`
	Image     *string `json:"image"`
}

type petResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specie    string    `json:"specie"`
	BirthDate time.Time `json:"birthDate"`
	Adopted   bool      `json:"adopted"`
	Owner     string    `json:"owner,omitempty"`
	Image     string    `json:"image,omitempty"`
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			web.Err(w, http.StatusInternalServerError, "Internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toResponse(p))
		}
		web.OK(w, out)
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		p, err := createFromRequest(r, svc, req, "")
		if err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}
		web.OK(w, toResponse(p))
	}
}

func createPetWithImageHandler(svc *Service, images ImageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		req := createPetRequest{
			Name:      r.FormValue("name"),
			Specie:    r.FormValue("specie"),
			BirthDate: r.FormValue("birthDate"),
		}

		image := ""
		if f, fh, err := r.FormFile("image"); err == nil {
			defer f.Close()

			if !allowedImageExt(fh.Filename) {
				web.Err(w, http.StatusBadRequest, "Only image files are allowed (jpeg, jpg, png, gif)")
				return
			}
			ref, err := images.SavePetImage(fh.Filename, f)
			if err != nil {
				web.Err(w, http.StatusInternalServerError, "Internal error")
				return
			}
			image = "/pets/" + ref
		}

		p, err := createFromRequest(r, svc, req, image)
		if err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}
		web.OK(w, toResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, "Incomplete values")
			return
		}

		var bd *time.Time
		if req.BirthDate != nil {
			t, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				web.Err(w, http.StatusBadRequest, "Incomplete values")
				return
			}
			bd = &t
		}

		_, err := svc.Update(r.Context(), chi.URLParam(r, "pid"), UpdateInput{
			Name:      req.Name,
			Specie:    req.Specie,
			BirthDate: bd,
			Image:     req.Image,
		})
		switch {
		case err == nil:
			web.OKMessage(w, "pet updated")
		case errors.Is(err, ErrNotFound):
			web.Err(w, http.StatusNotFound, "Pet not found")
		case errors.Is(err, ErrInvalidInput):
			web.Err(w, http.StatusBadRequest, "Incomplete values")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

// El delete es deliberadamente permisivo: borrar un id bien formado que no
// existe reporta éxito igual (borrado idempotente).
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "pid")); err != nil && !errors.Is(err, ErrNotFound) {
			web.Err(w, http.StatusInternalServerError, "Internal error")
			return
		}
		web.OKMessage(w, "pet deleted")
	}
}

func createFromRequest(r *http.Request, svc *Service, req createPetRequest, image string) (Pet, error) {
	var bd *time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return Pet{}, ErrInvalidInput
		}
		bd = &t
	}

	return svc.Create(r.Context(), CreateInput{
		Name:      req.Name,
		Specie:    req.Specie,
		BirthDate: bd,
		Image:     image,
	})
}

// Mismo filtro que tenía el uploader original.
func allowedImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpeg", ".jpg", ".png", ".gif":
		return true
	default:
		return false
	}
}

func toResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Specie:    p.Specie,
		BirthDate: p.BirthDate,
		Adopted:   p.Adopted,
		Owner:     p.Owner,
		Image:     p.Image,
	}
}
