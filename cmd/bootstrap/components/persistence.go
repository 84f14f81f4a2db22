package components

import (
	"tutorin/internal/infra/db"
	"tutorin/internal/infra/readstore"
	"tutorin/internal/infra/uow"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"
	"tutorin/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Booking read store backs three query-side views of the same table.
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(queries.BookingPartyResolver)),
			fx.As(new(queries.BusyIntervalRepo)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
		fx.Annotate(
			readstore.NewTutorReadStore,
			fx.As(new(queries.TutorSnapshotReader)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.CredentialStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
