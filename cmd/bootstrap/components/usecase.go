package components

import (
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/config"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"
	"tutorin/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.BookingCommands {
			return commands.NewBookingUseCase(uow, clk, cfg.Booking.LeadTime)
		},
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.PaymentCommands {
			return commands.NewPaymentUseCase(uow, clk, cfg.Payment.ExpiryWindow)
		},
		commands.NewReviewUseCase,
		commands.NewAuthUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPaymentQueries,
		queries.NewAvailabilityQueries,
	),
)
