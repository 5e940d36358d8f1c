package api

import (
	stdhttp "net/http"

	intconfig "ridemarket/internal/config"
	h "ridemarket/internal/http/handlers"
	"ridemarket/internal/http/middleware"
	"ridemarket/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env, api h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSOrigins),
		middleware.Metrics(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warnw("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{"error": "route not found"})
	})

	if env.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	g := r.Group("/api")
	g.Use(middleware.AgencyScope([]byte(env.JWTSecret)))
	{
		g.GET("/health", h.Health)
		g.GET("/routes", h.Routes)

		trips := g.Group("/trips")
		trips.GET("", api.SearchTrips)
		trips.GET("/:id", api.GetTrip)
		trips.PATCH("/:id/status", api.UpdateTripStatus)

		bookings := g.Group("/bookings")
		bookings.POST("", api.CreateBooking)
		bookings.GET("", api.ListBookings)
		bookings.GET("/:id", api.GetBooking)
		bookings.POST("/:id/cancel", api.CancelBooking)
		bookings.GET("/:id/ticket", api.GetTicket)
		bookings.GET("/:id/e-ticket", api.GetETicketPDF)

		g.POST("/tickets/validate", api.ValidateTicket)

		disputes := g.Group("/disputes")
		disputes.GET("", api.ListDisputes)
		disputes.POST("", api.CreateDispute)
		disputes.GET("/:id", api.GetDispute)
		operators := middleware.RequireRoles("admin", "agency")
		disputes.PATCH("/:id", operators, api.PatchDispute)
		disputes.POST("/:id/review", operators, api.ReviewDispute)
		disputes.POST("/:id/resolve", operators, api.ResolveDispute)

		g.POST("/ratings", api.CreateRating)
		g.GET("/drivers/:id/ratings", api.DriverRatings)
		g.GET("/notifications", api.ListNotifications)
	}

	h.SetRouter(r)
	return r
}
