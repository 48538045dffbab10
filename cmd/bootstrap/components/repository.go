package components

import (
	"slotboard/internal/infra/db"
	"slotboard/internal/infra/readstore"
	repo_impl "slotboard/internal/infra/repository"
	"slotboard/internal/infra/uow"
	"slotboard/internal/usecase/queries"
	"slotboard/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewSlotRepository,
			fx.As(new(shared.SlotRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(shared.ReservationRepository)),
		),
		// Read-side repository for queries
		fx.Annotate(
			readstore.NewBoardReadStore,
			fx.As(new(queries.BoardViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
