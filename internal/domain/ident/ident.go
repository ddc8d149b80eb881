// Package ident convierte identificadores externos (texto opaco) al tipo nativo del almacenamiento.
// Todos los adaptadores guardan los IDs como UUID; ningún ID enviado por el cliente llega
// a la capa de persistencia sin pasar por Encode.
package ident

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain"
)

// ID identificador nativo del almacenamiento.
type ID = uuid.UUID

// Encode valida y convierte un identificador externo. Solo acepta la forma canónica
// de 36 caracteres (8-4-4-4-12, hexadecimal); cualquier otra devuelve ErrInvalidIdentifier.
func Encode(raw string) (ID, error) {
	if len(raw) != 36 {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}
	return id, nil
}

// Decode devuelve la forma externa (minúsculas, canónica). Es total.
func Decode(id ID) string {
	return id.String()
}

// EncodeOptional acepta además "" y "null" como ausencia de referencia (nil).
func EncodeOptional(raw *string) (*ID, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" || s == "null" {
		return nil, nil
	}
	id, err := Encode(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// DecodeOptional es el inverso de EncodeOptional.
func DecodeOptional(id *ID) *string {
	if id == nil {
		return nil
	}
	s := Decode(*id)
	return &s
}

// New genera un identificador nuevo para documentos aún no persistidos.
func New() ID {
	return uuid.New()
}
