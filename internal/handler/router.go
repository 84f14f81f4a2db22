package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tutorin/internal/domain/user"
	"tutorin/internal/handler/api"
	"tutorin/internal/handler/middleware"
	"tutorin/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	availabilityHandler *api.AvailabilityHandler,
	reviewHandler *api.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, paymentHandler, availabilityHandler, reviewHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	availabilityHandler *api.AvailabilityHandler,
	reviewHandler *api.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	asStudent := authMiddleware.RequireRole(user.RoleStudent)
	asTutor := authMiddleware.RequireRole(user.RoleTutor)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		tutors := apiGroup.Group("/tutors")
		{
			addRoutes(tutors, []route{
				{Method: http.MethodGet, Path: "/:id/available-slots", Handler: availabilityHandler.TutorSlots},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create, Mw: []gin.HandlerFunc{asStudent}},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPatch, Path: "/:id/confirm", Handler: bookingHandler.Confirm, Mw: []gin.HandlerFunc{asTutor}},
				{Method: http.MethodPatch, Path: "/:id/complete/tutor", Handler: bookingHandler.CompleteByTutor, Mw: []gin.HandlerFunc{asTutor}},
				{Method: http.MethodPatch, Path: "/:id/complete/student", Handler: bookingHandler.CompleteByStudent, Mw: []gin.HandlerFunc{asStudent}},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			addRoutes(payments, []route{
				{Method: http.MethodGet, Path: "/methods", Handler: paymentHandler.Methods},
			})

			authed := payments.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "/initiate", Handler: paymentHandler.Initiate, Mw: []gin.HandlerFunc{asStudent}},
				{Method: http.MethodGet, Path: "/booking/:bookingId", Handler: paymentHandler.GetByBooking},
				{Method: http.MethodPost, Path: "/:id/proof", Handler: paymentHandler.UploadProof, Mw: []gin.HandlerFunc{asStudent}},
				{Method: http.MethodGet, Path: "/pending-verifications", Handler: paymentHandler.PendingVerifications, Mw: []gin.HandlerFunc{asTutor}},
				{Method: http.MethodPatch, Path: "/:id/verify", Handler: paymentHandler.Verify, Mw: []gin.HandlerFunc{asTutor}},
				{Method: http.MethodPatch, Path: "/:id/reject", Handler: paymentHandler.Reject, Mw: []gin.HandlerFunc{asTutor}},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: reviewHandler.Create, Mw: []gin.HandlerFunc{asStudent}},
				{Method: http.MethodDelete, Path: "/:id", Handler: reviewHandler.Delete},
				{Method: http.MethodPost, Path: "/:id/response", Handler: reviewHandler.Respond, Mw: []gin.HandlerFunc{asTutor}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
