package ports

// AuditEntry entrada del registro de auditoría: quién hizo qué sobre qué entidad.
type AuditEntry struct {
	Action     string // create, update, delete, receive, resolve
	Entity     string // purchase_order, receipt, customer_invoice
	EntityID   string
	EntityName string
	UserID     string
	UserName   string
}

// AuditRecorder colaborador de auditoría: fire-and-forget, nunca bloquea ni
// hace fallar la operación principal.
type AuditRecorder interface {
	Record(entry AuditEntry)
}
