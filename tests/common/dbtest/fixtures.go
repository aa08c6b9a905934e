//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestResource inserts an active bookable resource. The capacity is
// stored as given for equipment; pass 1 for rooms.
func CreateTestResource(t *testing.T, db DBLike, name, kind string, capacity int, priceCentsHour int64) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO resources (id, name, kind, capacity, price_cents_hour, open_time_min, close_time_min, open_days, active)
		VALUES ($1, $2, $3, $4, $5, 480, 1200, 127, true)`,
		resourceID, name, kind, capacity, priceCentsHour)
	require.NoError(t, err)

	return resourceID
}

// AddScheduleEntry opens one weekday window on a resource. Minutes are
// counted from midnight.
func AddScheduleEntry(t *testing.T, db DBLike, resourceID uuid.UUID, weekday, startMin, endMin int) uuid.UUID {
	t.Helper()

	entryID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO schedule_entries (id, resource_id, weekday, start_min, end_min)
		VALUES ($1, $2, $3, $4, $5)`,
		entryID, resourceID, weekday, startMin, endMin)
	require.NoError(t, err)

	return entryID
}

// OpenAllWeek gives the resource an 08:00-20:00 window every weekday, so
// tests do not depend on which day they run.
func OpenAllWeek(t *testing.T, db DBLike, resourceID uuid.UUID) {
	t.Helper()
	for weekday := 0; weekday < 7; weekday++ {
		AddScheduleEntry(t, db, resourceID, weekday, 8*60, 20*60)
	}
}

func CreateTestProduct(t *testing.T, db DBLike, name string, priceCents int64, stock int) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO products (id, name, price_cents, stock_quantity, active)
		VALUES ($1, $2, $3, $4, true)`,
		productID, name, priceCents, stock)
	require.NoError(t, err)

	return productID
}

func ProductStock(t *testing.T, db DBLike, productID uuid.UUID) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(),
		"SELECT stock_quantity FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}
