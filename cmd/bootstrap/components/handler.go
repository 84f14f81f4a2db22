package components

import (
	"tutorin/internal/handler"
	"tutorin/internal/handler/api"
	"tutorin/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewAvailabilityHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
