package mocks

import (
	"encoding/json"
	"fmt"
	"net/http"

	"adoptme/internal/domain/pets"
	"adoptme/internal/domain/users"
	"adoptme/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, gen *Generator, usersRepo users.Repository, petsRepo pets.Repository) {
	r.Route("/api/mocks", func(mr chi.Router) {
		mr.Get("/mockingusers", mockingUsersHandler(gen))
		mr.Get("/mockingpets", mockingPetsHandler(gen))
		mr.Post("/generateData", generateDataHandler(gen, usersRepo, petsRepo))
	})
}

func mockingUsersHandler(gen *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]map[string]any, 0, 50)
		for _, u := range gen.Users(50) {
			out = append(out, mockUserPayload(u))
		}
		web.OK(w, out)
	}
}

func mockingPetsHandler(gen *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]map[string]any, 0, 100)
		for _, p := range gen.Pets(100) {
			out = append(out, mockPetPayload(p))
		}
		web.OK(w, out)
	}
}

type generateDataRequest struct {
	// Punteros para distinguir "falta el parámetro" de cero.
	Users *int `json:"users"`
	Pets  *int `json:"pets"`
}

func generateDataHandler(gen *Generator, usersRepo users.Repository, petsRepo pets.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateDataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Err(w, http.StatusBadRequest, `Se requieren los parámetros "users" y "pets"`)
			return
		}
		if req.Users == nil || req.Pets == nil {
			web.Err(w, http.StatusBadRequest, `Se requieren los parámetros "users" y "pets"`)
			return
		}
		if *req.Users < 0 || *req.Pets < 0 {
			web.Err(w, http.StatusBadRequest, `Los parámetros "users" y "pets" deben ser números`)
			return
		}

		usersInserted := 0
		for _, u := range gen.Users(*req.Users) {
			if err := usersRepo.Create(r.Context(), u); err != nil {
				web.Err(w, http.StatusInternalServerError, "Internal error")
				return
			}
			usersInserted++
		}

		petsInserted := 0
		for _, p := range gen.Pets(*req.Pets) {
			if err := petsRepo.Create(r.Context(), p); err != nil {
				web.Err(w, http.StatusInternalServerError, "Internal error")
				return
			}
			petsInserted++
		}

		msg := fmt.Sprintf("Se insertaron %d usuarios y %d mascotas", usersInserted, petsInserted)
		web.OKMessagePayload(w, msg, map[string]any{
			"usersInserted": usersInserted,
			"petsInserted":  petsInserted,
		})
	}
}

func mockUserPayload(u users.User) map[string]any {
	return map[string]any{
		"id":              u.ID,
		"first_name":      u.FirstName,
		"last_name":       u.LastName,
		"email":           u.Email,
		"role":            string(u.Role),
		"pets":            u.Pets,
		"documents":       u.Documents,
		"last_connection": u.LastConnection,
	}
}

func mockPetPayload(p pets.Pet) map[string]any {
	return map[string]any{
		"id":        p.ID,
		"name":      p.Name,
		"specie":    p.Specie,
		"birthDate": p.BirthDate,
		"adopted":   p.Adopted,
	}
}
