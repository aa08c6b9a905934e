package repository

import (
	"context"
	"time"

	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/db"

	"github.com/google/uuid"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: dbtx}
}

const resourceColumns = `id, name, kind, capacity, price_cents_hour, open_time_min, close_time_min, open_days, active`

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	const query = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	return r.scanResource(ctx, query, id)
}

func (r *ResourceRepository) LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	const query = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1 FOR UPDATE`
	return r.scanResource(ctx, query, id)
}

func (r *ResourceRepository) scanResource(ctx context.Context, query string, id uuid.UUID) (*resource.Resource, error) {
	var (
		resID          uuid.UUID
		name           string
		kindStr        string
		capacity       int
		priceCentsHour int64
		openMin        int
		closeMin       int
		openDays       int16
		active         bool
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&resID, &name, &kindStr, &capacity, &priceCentsHour, &openMin, &closeMin, &openDays, &active,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	kind, err := resource.ParseKind(kindStr)
	if err != nil {
		return nil, infra.WrapRepoErr("stored resource kind is invalid", err)
	}

	res, err := resource.NewResource(
		resID, name, kind, capacity, priceCentsHour,
		resource.TimeOfDay(openMin), resource.TimeOfDay(closeMin),
		resource.Weekdays(openDays), active,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("stored resource is invalid", err)
	}
	return res, nil
}

func (r *ResourceRepository) ScheduleEntries(ctx context.Context, resourceID uuid.UUID, weekday time.Weekday) ([]resource.ScheduleEntry, error) {
	const query = `
SELECT id, resource_id, weekday, start_min, end_min
FROM schedule_entries
WHERE resource_id = $1 AND weekday = $2
ORDER BY start_min`

	rows, err := r.db.Query(ctx, query, resourceID, int(weekday))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedule entries", err)
	}
	defer rows.Close()

	var entries []resource.ScheduleEntry
	for rows.Next() {
		var (
			e        resource.ScheduleEntry
			day      int
			startMin int
			endMin   int
		)
		if err := rows.Scan(&e.ID, &e.ResourceID, &day, &startMin, &endMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule entry", err)
		}
		e.Weekday = time.Weekday(day)
		e.Start = resource.TimeOfDay(startMin)
		e.End = resource.TimeOfDay(endMin)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule entries", err)
	}
	return entries, nil
}
