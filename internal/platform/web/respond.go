package web

import (
	"encoding/json"
	"net/http"
)

// Envelope es el wrapper uniforme de todas las respuestas:
// {status: "success"|"error", payload?, message?, error?}
type Envelope struct {
	Status  string `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK responde 200 con payload.
func OK(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, Envelope{Status: "success", Payload: payload})
}

// OKMessage responde 200 con un mensaje (sin payload).
func OKMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Status: "success", Message: message})
}

// OKMessagePayload responde 200 con mensaje y payload.
func OKMessagePayload(w http.ResponseWriter, message string, payload any) {
	writeJSON(w, http.StatusOK, Envelope{Status: "success", Message: message, Payload: payload})
}

// Err responde con status de error y el string de error del contrato.
func Err(w http.ResponseWriter, status int, errMsg string) {
	writeJSON(w, status, Envelope{Status: "error", Error: errMsg})
}

// Los handlers nunca dejan escapar errores crudos: todo sale por este encoder.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
