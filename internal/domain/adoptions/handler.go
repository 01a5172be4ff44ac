package adoptions

import (
	"errors"
	"net/http"
	"time"

	"adoptme/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/adoptions", func(ar chi.Router) {
		ar.Get("/", listAdoptionsHandler(svc))
		ar.Get("/{aid}", getAdoptionHandler(svc))
		ar.Post("/{uid}/{pid}", createAdoptionHandler(svc))
	})
}

type adoptionResponse struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Pet       string    `json:"pet"`
	CreatedAt time.Time `json:"created_at"`
}

func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			web.Err(w, http.StatusInternalServerError, "Internal error")
			return
		}

		out := make([]adoptionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		web.OK(w, out)
	}
}

func getAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "aid"))
		if err != nil {
			web.Err(w, http.StatusNotFound, "Adoption not found")
			return
		}
		web.OK(w, toResponse(a))
	}
}

func createAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "uid")
		petID := chi.URLParam(r, "pid")

		_, err := svc.Adopt(r.Context(), userID, petID)
		switch {
		case err == nil:
			web.OKMessage(w, "Pet adopted")
		case errors.Is(err, ErrUserNotFound):
			web.Err(w, http.StatusNotFound, "user Not found")
		case errors.Is(err, ErrPetNotFound):
			web.Err(w, http.StatusNotFound, "Pet not found")
		case errors.Is(err, ErrAlreadyAdopted):
			web.Err(w, http.StatusBadRequest, "Pet is already adopted")
		default:
			web.Err(w, http.StatusInternalServerError, "Internal error")
		}
	}
}

func toResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:        a.ID,
		Owner:     a.Owner,
		Pet:       a.Pet,
		CreatedAt: a.CreatedAt,
	}
}
