package routes

import (
	"time"

	"govconnect/handlers"
	"govconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTimeslotRoutes registers the slot ledger endpoints.
func RegisterTimeslotRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	timeslots := api.Group("/timeslots")
	{
		// Public listing of an authority's open slots.
		timeslots.GET("/authority/:authorityId", hb.Timeslots.ListOpenSlotsHandler)

		official := timeslots.Group("")
		official.Use(middleware.RequireOfficial())
		official.GET("", hb.Timeslots.ListOwnSlotsHandler)
		official.POST("", hb.Timeslots.PublishSlotHandler)
		official.POST("/bulk", hb.Timeslots.PublishSlotsHandler)
		official.DELETE("", hb.Timeslots.RemoveSlotHandler)
	}
}

// RegisterAuthorityRoutes registers the authority directory.
func RegisterAuthorityRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	authorities := api.Group("/authorities")
	{
		authorities.GET("", hb.Authorities.ListHandler)
		authorities.GET("/:authorityId", hb.Authorities.GetHandler)
	}
}

// RegisterCredentialRoutes registers QR credential issuing and verification.
func RegisterCredentialRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	credentials := api.Group("/credentials")
	{
		credentials.Use(middleware.RequireActor())
		credentials.GET("/:id", hb.Credentials.IssueHandler)
		credentials.GET("/:id/qr.png", hb.Credentials.QRCodeHandler)
		credentials.POST("/verify", middleware.RequireOfficial(), hb.Credentials.VerifyHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r gin.IRoutes) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	RegisterHealthRoute(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	api.Use(middleware.ActorMiddleware(hb.JWTSecret))
	RegisterHealthRoute(api)

	RegisterAuthorityRoutes(api, hb)
	RegisterTimeslotRoutes(api, hb)
	RegisterAppointmentRoutes(api, hb)
	RegisterCredentialRoutes(api, hb)
}
