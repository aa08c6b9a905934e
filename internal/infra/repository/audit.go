package repository

import (
	"context"

	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"

	"github.com/google/uuid"
)

type AuditRepository struct {
	db db.DBTX
}

func NewAuditRepository(dbtx db.DBTX) *AuditRepository {
	return &AuditRepository{db: dbtx}
}

func (r *AuditRepository) Record(ctx context.Context, actorID uuid.UUID, action string, targetID *uuid.UUID, reason string) error {
	const stmt = `
INSERT INTO admin_logs (id, actor_id, action, target_id, reason, created_at)
VALUES ($1, $2, $3, $4, $5, now())`

	_, err := r.db.Exec(ctx, stmt, uuid.New(), actorID, action, targetID, reason)
	if err != nil {
		return infra.WrapRepoErr("failed to record admin action", err)
	}
	return nil
}
