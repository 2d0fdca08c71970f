package entity

import "time"

// Tipos de tercero.
const (
	PartnerTypeSupplier = "SUPPLIER" // proveedor
	PartnerTypeCustomer = "CUSTOMER" // cliente
	PartnerTypeBoth     = "BOTH"
)

// Partner representa un tercero: proveedor, cliente o ambos.
type Partner struct {
	ID        string
	Name      string
	Type      string // SUPPLIER, CUSTOMER, BOTH
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
