package repository

import (
	"context"
	"time"

	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"

	"github.com/google/uuid"
)

type BlockRepository struct {
	db db.DBTX
}

func NewBlockRepository(dbtx db.DBTX) *BlockRepository {
	return &BlockRepository{db: dbtx}
}

func (r *BlockRepository) Create(ctx context.Context, b *resource.Block) error {
	const stmt = `
INSERT INTO manual_blocks (id, resource_id, start_at, end_at, reason, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, stmt, b.ID, b.ResourceID, b.Start, b.End, b.Reason, b.CreatedBy, b.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("block references unknown resource", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create manual block", err)
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM manual_blocks WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete manual block", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("manual block not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BlockRepository) Overlapping(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*resource.Block, error) {
	const query = `
SELECT id, resource_id, start_at, end_at, reason, created_by, created_at
FROM manual_blocks
WHERE resource_id = $1 AND start_at < $3 AND end_at > $2
ORDER BY start_at`

	rows, err := r.db.Query(ctx, query, resourceID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list manual blocks", err)
	}
	defer rows.Close()

	var blocks []*resource.Block
	for rows.Next() {
		var b resource.Block
		if err := rows.Scan(&b.ID, &b.ResourceID, &b.Start, &b.End, &b.Reason, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan manual block", err)
		}
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read manual blocks", err)
	}
	return blocks, nil
}
