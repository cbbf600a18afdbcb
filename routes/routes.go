package routes

import (
	"log"
	"net/http"
	"time"

	"room-booking/config"
	"room-booking/controllers"
	"room-booking/middleware"
	"room-booking/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Rooms    *controllers.RoomController
	Bookings *controllers.BookingController
	Calendar *controllers.CalendarController
	Settings *controllers.SettingsController
	Admin    *controllers.AdminController
}

// New wires services and controllers over db and returns the router.
func New(db *gorm.DB, cfg config.Config) *gin.Engine {
	settingsSvc := services.NewSettingsService(db)
	userSvc := services.NewUserService(db, cfg.BcryptCost)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, userSvc)
	roomSvc := services.NewRoomService(db)
	bookingSvc := services.NewBookingService(db, settingsSvc)
	calendarSvc := services.NewCalendarService(db, roomSvc)

	ctrls := Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Rooms:    controllers.NewRoomController(roomSvc, calendarSvc),
		Bookings: controllers.NewBookingController(bookingSvc),
		Calendar: controllers.NewCalendarController(calendarSvc),
		Settings: controllers.NewSettingsController(settingsSvc),
		Admin:    controllers.NewAdminController(userSvc),
	}
	return SetupRouter(cfg, ctrls, authSvc)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
}

// SetupRouter mounts the API under /api; /health is also served at the root.
func SetupRouter(cfg config.Config, ctrls Controllers, verifier middleware.TokenVerifier) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("⚠️  invalid trusted proxies %v: %v; trusting none", cfg.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.Logger(), gin.Recovery())

	allowCredentials := true
	for _, origin := range cfg.CorsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", health)

	authn := middleware.Authenticate(verifier)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst)

	api := r.Group("/api")
	{
		api.GET("/health", health)

		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Limit(), ctrls.Auth.Login)
			auth.POST("/register", loginLimiter.Limit(), ctrls.Auth.Register)
			auth.GET("/me", authn, ctrls.Auth.Me)
		}

		rooms := api.Group("/rooms", authn)
		{
			rooms.GET("", ctrls.Rooms.GetRooms)
			rooms.GET("/:id", ctrls.Rooms.GetRoom)
			rooms.GET("/:id/availability", ctrls.Rooms.GetRoomAvailability)
		}

		bookings := api.Group("/bookings", authn)
		{
			bookings.GET("", ctrls.Bookings.GetMyBookings)
			bookings.POST("", ctrls.Bookings.CreateBooking)
			bookings.DELETE("/:id", ctrls.Bookings.DeleteMyBooking)
		}

		calendar := api.Group("/calendar", authn)
		{
			calendar.GET("/bookings", ctrls.Calendar.GetCalendarBookings)
			calendar.GET("/availability", ctrls.Calendar.GetCalendarAvailability)
		}

		api.GET("/settings", authn, ctrls.Settings.GetPublicSettings)

		admin := api.Group("/admin", authn, middleware.RequireAdmin())
		{
			admin.GET("/users", ctrls.Admin.GetUsers)
			admin.POST("/users", ctrls.Admin.CreateUser)
			admin.PUT("/users/:id/role", ctrls.Admin.UpdateUserRole)
			admin.DELETE("/users/:id", ctrls.Admin.DeleteUser)

			admin.POST("/rooms", ctrls.Rooms.CreateRoom)
			admin.DELETE("/rooms/:id", ctrls.Rooms.DeleteRoom)

			admin.GET("/bookings", ctrls.Bookings.GetAllBookings)
			admin.DELETE("/bookings/:id", ctrls.Bookings.DeleteAnyBooking)

			admin.GET("/settings", ctrls.Settings.GetSettings)
			admin.PUT("/settings", ctrls.Settings.UpdateSettings)
		}
	}

	return r
}
