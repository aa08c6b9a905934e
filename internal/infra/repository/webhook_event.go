package repository

import (
	"context"

	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"
)

type WebhookEventRepository struct {
	db db.DBTX
}

func NewWebhookEventRepository(dbtx db.DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{db: dbtx}
}

func (r *WebhookEventRepository) TryInsert(ctx context.Context, eventID, externalID string) error {
	const stmt = `
INSERT INTO webhook_events (event_id, external_id, received_at)
VALUES ($1, $2, now())`

	_, err := r.db.Exec(ctx, stmt, eventID, externalID)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("webhook event already processed", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to journal webhook event", err)
	}
	return nil
}
