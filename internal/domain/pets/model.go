package pets

import "time"

// Pet representa una mascota en adopción.
// Invariante: Adopted == true sii Owner != "".
type Pet struct {
	ID        string
	Name      string
	Specie    string
	BirthDate time.Time

	Adopted bool
	Owner   string // id del usuario adoptante; vacío si no está adoptada

	Image string // referencia opcional a la imagen subida
}
