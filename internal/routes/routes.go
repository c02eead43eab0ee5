package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/config"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-crm/internal/handlers"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/ratelimit"
	infraRepo "github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-crm/internal/usecase/appointment"
	ucMembership "github.com/BruksfildServices01/clinic-crm/internal/usecase/membership"
	ucOrder "github.com/BruksfildServices01/clinic-crm/internal/usecase/order"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	auditDispatcher *audit.Dispatcher,
	loginCounter ratelimit.Counter,
) {

	// ======================================================
	// INFRA
	// ======================================================
	repos := infraRepo.NewRepositories(db)
	clock := timezone.NewClock(cfg.ClinicTimezone)

	authCfg := auth.ConfigFrom(cfg)
	tokens := auth.NewTokenManager(authCfg)
	authService := auth.NewService(repos.Staff, tokens, auth.NewHasher(authCfg.BcryptCost))

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(repos.Appointments, auditDispatcher)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(repos.Appointments, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(repos.Appointments, auditDispatcher)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(repos.Appointments, auditDispatcher)

	createOrderUC := ucOrder.NewCreateOrder(repos.Orders, auditDispatcher)

	createMembershipUC := ucMembership.NewCreateMembership(repos.Memberships, auditDispatcher)
	deleteMembershipUC := ucMembership.NewDeleteMembership(repos.Memberships, auditDispatcher)
	adjustPointsUC := ucMembership.NewAdjustPoints(repos.Memberships, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, auditDispatcher)
	staffHandler := handlers.NewStaffHandler(repos.Staff, authService, auditDispatcher)
	customerHandler := handlers.NewCustomerHandler(repos.Customers, auditDispatcher, clock)
	consultationHandler := handlers.NewConsultationHandler(repos.Consultations, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(
		repos.Appointments,
		auditDispatcher,
		clock,
		createAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
	)
	treatmentHandler := handlers.NewTreatmentHandler(repos.Treatments, auditDispatcher, clock)
	membershipHandler := handlers.NewMembershipHandler(
		repos.Memberships,
		auditDispatcher,
		createMembershipUC,
		deleteMembershipUC,
		adjustPointsUC,
	)
	projectHandler := handlers.NewProjectHandler(repos.Projects, auditDispatcher)
	orderHandler := handlers.NewOrderHandler(repos.Orders, auditDispatcher, clock, createOrderUC)
	campaignHandler := handlers.NewCampaignHandler(repos.Campaigns, auditDispatcher, clock)
	auditLogsHandler := handlers.NewAuditLogsHandler(repos.AuditLogs, clock)

	authenticated := middleware.Authenticate(tokens)
	adminOnly := middleware.RequireRole(staff.RoleAdmin)

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/login",
				middleware.LoginThrottle(loginCounter, cfg.LoginMaxAttempts, cfg.LoginWindow),
				authHandler.Login,
			)
			authAPI.POST("/register", authenticated, adminOnly, authHandler.Register)
			authAPI.POST("/change-password/:id", authenticated, middleware.SelfOrAdmin("id"), authHandler.ChangePassword)
			authAPI.GET("/profile/:id", authenticated, authHandler.Profile)
		}

		secured := api.Group("")
		secured.Use(authenticated)

		// ------------------------------
		// CUSTOMERS
		// ------------------------------
		customers := secured.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.GET("/export", customerHandler.Export)
			customers.GET("/:id", customerHandler.Get)
			customers.GET("/:id/referrals", customerHandler.Referrals)
			customers.POST("", customerHandler.Create)
			customers.PUT("/:id", customerHandler.Update)
			customers.PATCH("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		staffAPI := secured.Group("/staff")
		{
			staffAPI.GET("", staffHandler.List)
			staffAPI.GET("/role/:role", staffHandler.ByRole)
			staffAPI.GET("/:id", staffHandler.Get)
			staffAPI.POST("", adminOnly, staffHandler.Create)
			staffAPI.PUT("/:id", adminOnly, staffHandler.Update)
			staffAPI.PATCH("/:id", adminOnly, staffHandler.Update)
			staffAPI.DELETE("/:id", adminOnly, staffHandler.Delete)
		}

		// ------------------------------
		// CONSULTATIONS
		// ------------------------------
		consultations := secured.Group("/consultations")
		{
			consultations.GET("", consultationHandler.List)
			consultations.GET("/customer/:customerId", consultationHandler.ByCustomer)
			consultations.GET("/consultant/:staffId", consultationHandler.ByConsultant)
			consultations.GET("/:id", consultationHandler.Get)
			consultations.POST("", consultationHandler.Create)
			consultations.PUT("/:id", consultationHandler.Update)
			consultations.PATCH("/:id", consultationHandler.Update)
			consultations.DELETE("/:id", consultationHandler.Delete)
		}

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := secured.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/customer/:customerId", appointmentHandler.ByCustomer)
			appointments.GET("/staff/:staffId", appointmentHandler.ByStaff)
			appointments.GET("/status/:status", appointmentHandler.ByStatus)
			appointments.GET("/date-range", appointmentHandler.ByDateRange)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.POST("", appointmentHandler.Create)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.PATCH("/:id", appointmentHandler.Update)
			appointments.PATCH("/:id/confirm", appointmentHandler.Confirm)
			appointments.PATCH("/:id/complete", appointmentHandler.Complete)
			appointments.PATCH("/:id/cancel", appointmentHandler.Cancel)
			appointments.DELETE("/:id", appointmentHandler.Delete)
		}

		// ------------------------------
		// TREATMENTS
		// ------------------------------
		treatments := secured.Group("/treatments")
		{
			treatments.GET("", treatmentHandler.List)
			treatments.GET("/customer/:customerId", treatmentHandler.ByCustomer)
			treatments.GET("/consultation/:consultationId", treatmentHandler.ByConsultation)
			treatments.GET("/upcoming", treatmentHandler.Upcoming)
			treatments.GET("/:id", treatmentHandler.Get)
			treatments.POST("",
				middleware.RequireRole(staff.RoleDoctor, staff.RoleNurse, staff.RoleAdmin),
				treatmentHandler.Create,
			)
			treatments.PUT("/:id", treatmentHandler.Update)
			treatments.PATCH("/:id", treatmentHandler.Update)
			treatments.DELETE("/:id", treatmentHandler.Delete)
		}

		// ------------------------------
		// MEMBERSHIPS
		// ------------------------------
		memberships := secured.Group("/memberships")
		{
			memberships.GET("", membershipHandler.List)
			memberships.GET("/customer/:customerId", membershipHandler.ByCustomer)
			memberships.GET("/tier/:tier", membershipHandler.ByTier)
			memberships.GET("/:id", membershipHandler.Get)
			memberships.POST("", membershipHandler.Create)
			memberships.PUT("/:id", membershipHandler.Update)
			memberships.PATCH("/:id", membershipHandler.Update)
			memberships.PATCH("/:id/points", membershipHandler.AdjustPoints)
			memberships.DELETE("/:id", membershipHandler.Delete)
		}

		// ------------------------------
		// PROJECTS
		// ------------------------------
		projects := secured.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.GET("/category/:category", projectHandler.ByCategory)
			projects.GET("/active", projectHandler.Active)
			projects.GET("/:id", projectHandler.Get)
			projects.POST("", projectHandler.Create)
			projects.PUT("/:id", projectHandler.Update)
			projects.PATCH("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		// ------------------------------
		// ORDERS
		// ------------------------------
		orders := secured.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/customer/:customerId", orderHandler.ByCustomer)
			orders.GET("/status/:status", orderHandler.ByStatus)
			orders.GET("/date-range", orderHandler.ByDateRange)
			orders.GET("/:id", orderHandler.Get)
			orders.POST("", orderHandler.Create)
			orders.PUT("/:id", orderHandler.Update)
			orders.PATCH("/:id", orderHandler.Update)
			orders.DELETE("/:id", adminOnly, orderHandler.Delete)
		}

		// ------------------------------
		// CAMPAIGNS
		// ------------------------------
		campaigns := secured.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.List)
			campaigns.GET("/active", campaignHandler.Active)
			campaigns.GET("/:id", campaignHandler.Get)
			campaigns.POST("", campaignHandler.Create)
			campaigns.PUT("/:id", campaignHandler.Update)
			campaigns.PATCH("/:id", campaignHandler.Update)
			campaigns.DELETE("/:id", campaignHandler.Delete)
		}

		secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
	}
}
