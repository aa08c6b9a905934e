package components

import (
	"praxis-booking/internal/infra/db"
	"praxis-booking/internal/infra/uow"
	"praxis-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewUnitOfWork,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool)
}
