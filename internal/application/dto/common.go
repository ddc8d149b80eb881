package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse salida de un alta: solo el identificador asignado.
type CreatedResponse struct {
	ID string `json:"_id"`
}

// OptionalString distingue en JSON "ausente" (Set=false), null (Set=true, Value=nil) y un valor.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON se invoca solo si la clave está presente (también con null).
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
