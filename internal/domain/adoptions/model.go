package adoptions

import "time"

// Adoption es la entidad canónica de "quién adoptó qué". El flag adopted y
// el owner en Pet, y la lista pets en User, son copias desnormalizadas que
// este módulo mantiene en sincronía.
// Los registros son inmutables y nunca se borran.
type Adoption struct {
	ID        string
	Owner     string // id del usuario adoptante
	Pet       string // id de la mascota adoptada
	CreatedAt time.Time
}
