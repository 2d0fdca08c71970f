package allocation

import (
	"fmt"
	"strings"
)

// Códigos de error de validación de la distribución.
const (
	CodeMissingDistribution    = "MISSING_DISTRIBUTION"
	CodeIncompleteDistribution = "INCOMPLETE_DISTRIBUTION"
	CodeExcessDistribution     = "EXCESS_DISTRIBUTION"
	CodeNonPositiveQuantity    = "NON_POSITIVE_QUANTITY"
	CodeDuplicateWarehouse     = "DUPLICATE_WAREHOUSE"
	CodeUnknownProduct         = "UNKNOWN_PRODUCT"
)

// ValidationError es un problema puntual de la distribución.
type ValidationError struct {
	ProductID   string `json:"productId"`
	WarehouseID string `json:"warehouseId,omitempty"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}

// ValidationErrors es la lista completa de problemas: la validación nunca se
// queda en el primero, el operador debe poder ver todos a la vez.
type ValidationErrors []ValidationError

// Error implementa error resumiendo todos los problemas.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "distribución inválida"
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = fmt.Sprintf("%s[%s]: %s", e.Code, e.ProductID, e.Message)
	}
	return strings.Join(parts, "; ")
}
