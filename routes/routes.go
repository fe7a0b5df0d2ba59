// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventhub-api/config"
	"eventhub-api/controllers"
	"eventhub-api/middleware"
	"eventhub-api/models"
	"eventhub-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config,
	cache *services.CacheService, emailService *services.EmailService,
	provider services.PaymentProvider) {

	ticketService := services.NewTicketService()

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	eventController := controllers.NewEventController(db, cache)
	bookingController := controllers.NewBookingController(db, cache, emailService, ticketService)
	couponController := controllers.NewCouponController(db)
	paymentController := controllers.NewPaymentController(db, provider, cache, emailService)
	reviewController := controllers.NewReviewController(db)
	userController := controllers.NewUserController(db)
	adminController := controllers.NewAdminController(db, emailService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Public event browsing
	v1.GET("/events", eventController.GetEvents)
	v1.GET("/events/suggestions", eventController.GetSuggestions)
	v1.GET("/events/:id", eventController.GetEvent)
	v1.GET("/events/:id/reviews", reviewController.GetEventReviews)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/me", authController.Me)

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PATCH("/profile", userController.UpdateProfile)
		}
		protected.POST("/host-requests", userController.CreateHostRequest)

		// Booking routes
		bookings := protected.Group("/bookings")
		{
			bookings.POST("/", bookingController.CreateBooking)
			bookings.GET("/my-bookings", bookingController.GetMyBookings)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.PATCH("/:id/cancel", bookingController.CancelBooking)
			bookings.GET("/:id/ticket", bookingController.GetTicket)
		}

		// Coupon validation
		protected.POST("/coupons/validate", couponController.ValidateCoupon)

		// Payment routes
		payments := protected.Group("/payments")
		{
			payments.POST("/create-intent", paymentController.CreateIntent)
			payments.POST("/confirm", paymentController.ConfirmPayment)
		}

		// Reviews
		protected.POST("/events/:id/reviews", reviewController.CreateReview)
		protected.DELETE("/reviews/:id", reviewController.DeleteReview)

		// Host event management
		hostOnly := protected.Group("/")
		hostOnly.Use(middleware.RequireRole(models.RoleHost, models.RoleAdmin))
		{
			hostOnly.POST("/events", eventController.CreateEvent)
			hostOnly.PATCH("/events/:id", eventController.UpdateEvent)
			hostOnly.DELETE("/events/:id", eventController.DeleteEvent)
			hostOnly.GET("/events/my-events", eventController.GetMyEvents)
		}

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/host-requests", adminController.GetHostRequests)
			admin.PATCH("/host-requests/:id", adminController.DecideHostRequest)
			admin.GET("/users", adminController.GetUsers)
			admin.PATCH("/users/:id/status", adminController.UpdateUserStatus)
			admin.POST("/coupons", couponController.CreateCoupon)
			admin.GET("/coupons", couponController.GetCoupons)
			admin.DELETE("/coupons/:id", couponController.DeleteCoupon)
		}
	}
}
