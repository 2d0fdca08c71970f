package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/JahongirOfficial/climart-sub004/internal/application/ports"
)

var _ ports.AuditRecorder = (*Recorder)(nil)

// Recorder escribe entradas de auditoría en audit_log. Fire-and-forget: la
// escritura va en una goroutine con su propio timeout y un fallo solo se
// registra en el log, nunca bloquea ni hace fallar la operación principal.
type Recorder struct {
	pool *pgxpool.Pool
}

// NewRecorder construye el colaborador de auditoría.
func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

// Record encola la escritura de la entrada.
func (r *Recorder) Record(entry ports.AuditEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		query := `
			INSERT INTO audit_log (id, action, entity, entity_id, entity_name, user_id, user_name, created_at)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), now())`
		_, err := r.pool.Exec(ctx, query,
			uuid.New().String(), entry.Action, entry.Entity, entry.EntityID,
			entry.EntityName, entry.UserID, entry.UserName,
		)
		if err != nil {
			log.Warn().Err(err).
				Str("action", entry.Action).
				Str("entity", entry.Entity).
				Str("entity_id", entry.EntityID).
				Msg("no se pudo escribir la entrada de auditoría")
		}
	}()
}

// Noop recorder nulo para tests y arranques sin BD de auditoría.
type Noop struct{}

// Record no hace nada.
func (Noop) Record(ports.AuditEntry) {}
