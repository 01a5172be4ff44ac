// Package files guarda en disco las imágenes de mascotas y los documentos
// de usuarios. Los nombres de archivo se generan con ULID (únicos y
// ordenables por fecha), conservando la extensión original.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	petsDir      = "pets"
	documentsDir = "documents"
)

type Store struct {
	baseDir string
}

// New crea los subdirectorios si no existen (mismo bootstrap que el
// uploader original).
func New(baseDir string) (*Store, error) {
	for _, dir := range []string{petsDir, documentsDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Store{baseDir: baseDir}, nil
}

// SavePetImage implementa pets.ImageStore.
func (s *Store) SavePetImage(originalName string, r io.Reader) (string, error) {
	return s.save(petsDir, originalName, r)
}

// SaveDocument implementa users.DocumentStore.
func (s *Store) SaveDocument(originalName string, r io.Reader) (string, error) {
	return s.save(documentsDir, originalName, r)
}

func (s *Store) save(dir, originalName string, r io.Reader) (string, error) {
	name := ulid.Make().String() + strings.ToLower(filepath.Ext(originalName))

	f, err := os.Create(filepath.Join(s.baseDir, dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}
