package routes

import (
	"net/http"
	"time"

	"lawease/config"
	"lawease/handlers"
	"lawease/middleware"
	"lawease/models"
	"lawease/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		// Protected routes (Require Authentication)
		api.POST("/logout", auth, hb.Auth.Logout)
		api.GET("/me", auth, hb.Auth.Me)
	}
}

// RegisterLawyerRoutes registers the directory and lawyer self-service endpoints.
func RegisterLawyerRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/lawyers")
	{
		api.GET("", hb.Lawyer.Search)
		api.GET("/:id", hb.Lawyer.Get)

		// Ownership of the profile is checked in the service, the token role
		// is not refreshed after onboarding.
		protected := api.Group("")
		protected.Use(auth)
		protected.POST("/onboard", hb.Lawyer.Onboard)
		protected.PUT("/me", hb.Lawyer.UpdateProfile)
		protected.POST("/me/image", hb.Lawyer.UploadImage)
		protected.DELETE("/me/image", hb.Lawyer.DeleteImage)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(auth)
		bookingGroup.POST("", hb.Booking.Create)
		bookingGroup.GET("", hb.Booking.ListMine)
		bookingGroup.GET("/lawyer", hb.Booking.ListForLawyer)
		bookingGroup.GET("/:id", hb.Booking.Get)
		bookingGroup.POST("/:id/cancel", hb.Booking.Cancel)
		bookingGroup.PATCH("/:id/status", hb.Booking.UpdateStatus)
		bookingGroup.POST("/:id/payment-intent", hb.Booking.CreatePaymentIntent)
	}
}

func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/reviews")
	{
		api.GET("/lawyer/:lawyerId", hb.Review.ListForLawyer)
		api.POST("", auth, hb.Review.Submit)
	}
}

// RegisterMentorRoutes registers the AI mentor endpoints.
func RegisterMentorRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/mentor/consultations")
	{
		api.Use(auth)
		api.POST("", hb.Mentor.Create)
		api.GET("", hb.Mentor.List)
		api.GET("/:id", hb.Mentor.Get)
		api.POST("/:id/analyze", hb.Mentor.Analyze)
		api.POST("/:id/voice-session", hb.Mentor.VoiceSession)
		api.POST("/:id/summary", hb.Mentor.Summarize)
	}
}

func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/contact", hb.Contact.Submit)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(auth, middleware.RequireRole(models.RoleAdmin))
		adminGroup.PATCH("/lawyers/:id/verify", hb.Admin.VerifyLawyer)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Postgres {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "LawEase API"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(utils.GetLogger()))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.AppBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	auth := middleware.AuthMiddleware(hb.UserRepo, hb.TokenCache, hb.SessionStore)

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb, auth)
	RegisterLawyerRoutes(r, hb, auth)
	RegisterBookingRoutes(r, hb, auth)
	RegisterReviewRoutes(r, hb, auth)
	RegisterMentorRoutes(r, hb, auth)
	RegisterContactRoutes(r, hb)
	RegisterAdminRoutes(r, hb, auth)
}
