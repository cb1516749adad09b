// Package helpers agrupa utilidades compartidas por los controllers.
package helpers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/aditya1111/learnhub/internal/http/errors"
)

// maxBodyBytes limita el tamaño del body que aceptamos decodificar.
const maxBodyBytes = 1 << 20 // 1 MiB

// WriteJSON serializa v como JSON con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// DecodeJSON decodifica el body en dst rechazando campos desconocidos.
// Retorna un *AppError listo para WriteError.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}
