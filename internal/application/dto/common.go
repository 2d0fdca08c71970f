package dto

import "github.com/JahongirOfficial/climart-sub004/internal/domain/allocation"

// ErrorResponse respuesta estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorsResponse respuesta con la lista completa de errores de
// validación de una distribución (todos a la vez, nunca solo el primero).
type ValidationErrorsResponse struct {
	Code   string                       `json:"code"`
	Errors []allocation.ValidationError `json:"errors"`
}
