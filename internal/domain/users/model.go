package users

import "time"

// Role define los roles soportados.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Document es una referencia a un archivo subido por el usuario
// (nombre visible + referencia de almacenamiento).
type Document struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// User representa una cuenta de la plataforma.
// PasswordHash nunca se serializa hacia afuera.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // único, case-insensitive, guardado en minúsculas
	PasswordHash string
	Role         Role

	LastConnection time.Time
	Documents      []Document
	Pets           []string // ids de mascotas adoptadas, en orden de adopción
}
