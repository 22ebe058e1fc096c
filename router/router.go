package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resto-backoffice/controllers"
	"github.com/yeremiapane/resto-backoffice/floor"
	"github.com/yeremiapane/resto-backoffice/middlewares"
	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/repository"
	"github.com/yeremiapane/resto-backoffice/reservation"
	"gorm.io/gorm"
)

type Options struct {
	Restaurant string
	CORSOrigin string
	RateLimit  float64
	RateBurst  int
}

func SetupRouter(db *gorm.DB, engine *reservation.Engine, hub *floor.Hub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if opts.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimit, opts.RateBurst).RateLimit())
	}

	reservations := repository.NewReservationRepository(db)
	hours := repository.NewOpeningHourRepository(db)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, hub)
	hoursCtrl := controllers.NewOpeningHourController(hours, hub)
	reservationCtrl := controllers.NewReservationController(engine, reservations, hours, hub, opts.Restaurant)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/opening-hours", hoursCtrl.GetOpeningHours)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/reservations/availability", reservationCtrl.GetAvailability)
	r.POST("/reservations", middlewares.OptionalAuth(), reservationCtrl.CreateReservation)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// Staff (admin, staff, host)
	staff := auth.Group("")
	staff.Use(middlewares.RequireRole(models.RoleAdmin, models.RoleStaff, models.RoleHost))
	{
		staff.GET("/reservations", reservationCtrl.GetReservations)
		staff.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
		staff.GET("/reports/reservations-pdf", reservationCtrl.ExportDaySheet)
		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	}

	// Admin only
	admin := auth.Group("")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.POST("/users", userCtrl.CreateStaff)
		admin.PUT("/opening-hours/:weekday", hoursCtrl.SetOpeningHours)
		admin.DELETE("/opening-hours/:weekday", hoursCtrl.DeleteOpeningHours)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	}

	// WebSocket endpoint dengan middleware khusus
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/floor", controllers.FloorHandler(hub))
	}

	return r
}
