package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/audit"
	"github.com/macgonzales94/Felicita/internal/config"
	"github.com/macgonzales94/Felicita/internal/handlers"
	infraRepo "github.com/macgonzales94/Felicita/internal/infra/repository"
	"github.com/macgonzales94/Felicita/internal/lock"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/usecase/dashboard"
	ucReservation "github.com/macgonzales94/Felicita/internal/usecase/reservation"
	ucReview "github.com/macgonzales94/Felicita/internal/usecase/review"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// One process serializes bookings per staff member in memory; a Redis
	// address switches the lock to a shared one so replicas agree.
	var locker lock.Locker = lock.NewKeyedLocker()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		locker = lock.NewRedisLocker(client, 0)
	}

	// ======================================================
	// USE CASES (RESERVATIONS)
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		locker,
		auditDispatcher,
	)

	confirmReservationUC := ucReservation.NewConfirmReservation(
		reservationRepo,
		auditDispatcher,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
	)

	completeReservationUC := ucReservation.NewCompleteReservation(
		reservationRepo,
		auditDispatcher,
	)

	setStatusUC := ucReservation.NewSetReservationStatus(
		reservationRepo,
		auditDispatcher,
	)

	checkAvailabilityUC := ucReservation.NewCheckAvailability(reservationRepo)
	freeSlotsUC := ucReservation.NewFreeSlots(reservationRepo)

	byCustomerUC := ucReservation.NewListReservationsByCustomer(reservationRepo)
	byStaffDateUC := ucReservation.NewListReservationsByStaffDate(reservationRepo)
	byBusinessUC := ucReservation.NewListReservationsByBusiness(reservationRepo)
	reservationServicesUC := ucReservation.NewReservationServices(reservationRepo)

	statsUC := dashboard.NewStats(db)
	reviewsUC := ucReview.NewReviews(db)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, freeSlotsUC, checkAvailabilityUC)

	reservationHandler := handlers.NewReservationHandler(
		db,
		createReservationUC,
		confirmReservationUC,
		cancelReservationUC,
		completeReservationUC,
		setStatusUC,
		byCustomerUC,
		byStaffDateUC,
		byBusinessUC,
		reservationServicesUC,
	)

	businessHandler := handlers.NewBusinessHandler(db)
	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(statsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	reviewHandler := handlers.NewReviewHandler(reviewsUC, auditDispatcher)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/businesses", publicHandler.ListBusinesses)
			publicAPI.GET("/businesses/:id", publicHandler.GetBusiness)
			publicAPI.GET("/businesses/:id/services", publicHandler.ListServices)
			publicAPI.GET("/businesses/:id/staff", publicHandler.ListStaff)
			publicAPI.GET("/categories", publicHandler.ListCategories)

			publicAPI.GET("/staff/:id/free-slots", publicHandler.FreeSlots)
			publicAPI.GET("/staff/:id/availability", publicHandler.CheckSlot)

			publicAPI.GET("/services/:id/reviews", reviewHandler.ListForService)
			publicAPI.GET("/services/:id/review-stats", reviewHandler.ServiceStats)
			publicAPI.GET("/reviews/featured", reviewHandler.Featured)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/register-business", authHandler.RegisterBusiness)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.PATCH("/me", meHandler.Update)
			secured.POST("/me/password", meHandler.ChangePassword)

			secured.GET("/reservations/:id/services", reservationHandler.ListServices)

			// ------------------------------
			// CLIENT
			// ------------------------------
			client := secured.Group("/")
			client.Use(middleware.RequireRole(models.RoleClient))
			{
				client.POST("/reservations", reservationHandler.Create)
				client.GET("/me/reservations", reservationHandler.ListMine)
				client.PATCH("/reservations/:id/cancel", reservationHandler.CancelMine)

				client.POST("/reviews", reviewHandler.Create)
				client.GET("/me/reviews", reviewHandler.ListMine)
			}

			// ------------------------------
			// OWNER
			// ------------------------------
			owner := secured.Group("/business")
			owner.Use(middleware.RequireRole(models.RoleOwner))
			{
				owner.GET("", businessHandler.Get)
				owner.PATCH("", businessHandler.Update)

				owner.GET("/reservations", reservationHandler.ListForBusiness)
				owner.PATCH("/reservations/:id/confirm", reservationHandler.Confirm)
				owner.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
				owner.PATCH("/reservations/:id/complete", reservationHandler.Complete)
				owner.PATCH("/reservations/:id/status", reservationHandler.SetStatus)

				owner.GET("/staff", staffHandler.List)
				owner.POST("/staff", staffHandler.Create)
				owner.PATCH("/staff/:id", staffHandler.Update)
				owner.PATCH("/staff/:id/deactivate", staffHandler.Deactivate)
				owner.PATCH("/staff/:id/activate", staffHandler.Activate)
				owner.GET("/staff/:id/reservations", reservationHandler.ListByStaffDate)

				owner.GET("/staff/:id/windows", staffHandler.ListWindows)
				owner.POST("/staff/:id/windows", staffHandler.CreateWindow)
				owner.PUT("/staff/:id/windows/:windowId", staffHandler.UpdateWindow)
				owner.DELETE("/staff/:id/windows/:windowId", staffHandler.DeleteWindow)

				owner.GET("/services", serviceHandler.List)
				owner.POST("/services", serviceHandler.Create)
				owner.PATCH("/services/:id", serviceHandler.Update)
				owner.PATCH("/services/:id/deactivate", serviceHandler.Deactivate)
				owner.PATCH("/services/:id/activate", serviceHandler.Activate)

				owner.GET("/dashboard", dashboardHandler.Summary)
				owner.GET("/dashboard/weekday-load", dashboardHandler.WeekdayLoad)
				owner.GET("/dashboard/popular-services", dashboardHandler.PopularServices)
				owner.GET("/dashboard/frequent-clients", dashboardHandler.FrequentClients)

				owner.GET("/reviews", reviewHandler.ListForBusiness)
				owner.PATCH("/reviews/:id/approve", reviewHandler.Approve)
				owner.PATCH("/reviews/:id/reject", reviewHandler.Reject)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/businesses", adminHandler.ListBusinesses)
				admin.PATCH("/businesses/:id/verify", adminHandler.VerifyBusiness)
				admin.PATCH("/businesses/:id/suspend", adminHandler.SuspendBusiness)
				admin.PATCH("/businesses/:id/reactivate", adminHandler.ReactivateBusiness)

				admin.GET("/users", adminHandler.ListUsers)

				admin.GET("/categories", adminHandler.ListCategories)
				admin.POST("/categories", adminHandler.CreateCategory)
				admin.PATCH("/categories/:id", adminHandler.UpdateCategory)
				admin.PATCH("/categories/:id/deactivate", adminHandler.DeactivateCategory)

				admin.GET("/reviews", reviewHandler.ListAll)
				admin.DELETE("/reviews/:id", reviewHandler.Delete)

				admin.GET("/dashboard", dashboardHandler.PlatformSummary)
				admin.GET("/audit-logs", auditLogsHandler.ListAll)
			}
		}
	}
}
