package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clinic-appointment-api/internal/middleware"
	"clinic-appointment-api/internal/policy"
)

// NewRouter wires up every route. Role gates go through the authorization
// policy, one action per route group.
func NewRouter(h *Handler, secret string, rl *middleware.RateLimiter, log zerolog.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", middleware.RateLimit(rl), h.Register)
		authRoutes.POST("/login", middleware.RateLimit(rl), h.Login)
		authRoutes.POST("/refresh", h.Refresh)
		authRoutes.POST("/logout", middleware.Auth(secret), h.Logout)
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(secret))

	client := api.Group("/client")
	{
		client.GET("/dashboard", middleware.Require(policy.ViewOwnAppointments), h.ClientDashboard)
		client.GET("/appointments", middleware.Require(policy.ViewOwnAppointments), h.MyAppointments)
		client.POST("/appointments", middleware.Require(policy.BookAppointment), h.BookAppointment)
		client.DELETE("/appointments/:id", middleware.Require(policy.CancelAppointment), h.CancelAppointment)
		client.GET("/doctors", middleware.Require(policy.BookAppointment), h.DoctorsByDepartment)
	}

	doctor := api.Group("/doctor")
	{
		doctor.GET("/dashboard", middleware.Require(policy.ViewAssigned), h.DoctorDashboard)
		doctor.GET("/appointments", middleware.Require(policy.ViewAssigned), h.DoctorAppointments)
		doctor.PATCH("/appointments/:id/status", middleware.Require(policy.UpdateStatus), h.UpdateAppointmentStatus)
	}

	admin := api.Group("/admin")
	{
		admin.GET("/dashboard", middleware.Require(policy.ManageUsers), h.AdminDashboard)
		admin.GET("/users", middleware.Require(policy.ManageUsers), h.Users)
		admin.GET("/appointments", middleware.Require(policy.ViewAllAppointments), h.Appointments)
		admin.PUT("/appointments/:id", middleware.Require(policy.ManageAppointments), h.UpdateAppointment)
		admin.DELETE("/appointments/:id", middleware.Require(policy.ManageAppointments), h.DeleteAppointment)
		admin.GET("/pending-approvals", middleware.Require(policy.ApproveRegistrations), h.PendingApprovals)
		admin.POST("/users/:id/approve", middleware.Require(policy.ApproveRegistrations), h.ApproveUser)
		admin.POST("/users/:id/reject", middleware.Require(policy.ApproveRegistrations), h.RejectUser)
		admin.POST("/doctors", middleware.Require(policy.ProvisionDoctors), h.CreateDoctor)
	}

	return r
}
