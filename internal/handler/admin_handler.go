package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-appointment-api/internal/apperr"
	"clinic-appointment-api/internal/auth"
	"clinic-appointment-api/internal/middleware"
	"clinic-appointment-api/internal/model"
	"clinic-appointment-api/internal/store"
)

func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	totalAppointments, err := h.store.CountAppointments(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	doctors, err := h.store.UsersInRole(ctx, model.RoleDoctor)
	if err != nil {
		h.fail(c, err)
		return
	}
	clients, err := h.store.UsersInRole(ctx, model.RoleClient)
	if err != nil {
		h.fail(c, err)
		return
	}
	recent, err := h.store.RecentAll(ctx, 10)
	if err != nil {
		h.fail(c, err)
		return
	}
	pending, err := h.store.CountPendingUsers(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalAppointments":     totalAppointments,
		"doctors":               doctors,
		"clients":               clients,
		"recentAppointments":    recent,
		"pendingApprovalsCount": pending,
	})
}

func (h *Handler) Users(c *gin.Context) {
	users, err := h.store.AllUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Appointments lists everything, with an optional ?search= over patient
// name and department.
func (h *Handler) Appointments(c *gin.Context) {
	apts, err := h.store.ListAll(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": apts})
}

type UpdateAppointmentRequest struct {
	PatientName     string  `json:"patientName" binding:"required,max=100"`
	Department      string  `json:"department" binding:"required"`
	AppointmentDate string  `json:"appointmentDate" binding:"required"`
	DoctorID        *string `json:"doctorId"`
	Status          string  `json:"status" binding:"required,oneof=Pending Confirmed Completed Cancelled"`
}

// UpdateAppointment rewrites a record wholesale on behalf of an admin. The
// ID comes from the path; the body may move the appointment to any doctor,
// date or status.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	verrs := bindJSON(c, &req)

	var date time.Time
	if req.AppointmentDate != "" {
		var err error
		date, err = time.Parse(time.RFC3339, req.AppointmentDate)
		if err != nil {
			verrs = append(verrs, apperr.FieldError{
				Field: "AppointmentDate", Message: "must be an RFC3339 timestamp",
			})
		}
	}
	if verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	apt := &model.Appointment{
		ID:          c.Param("id"),
		PatientName: req.PatientName,
		Department:  req.Department,
		Date:        date,
		DoctorID:    req.DoctorID,
		Status:      req.Status,
	}
	if err := h.store.UpdateAppointment(c.Request.Context(), apt); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

// DeleteAppointment removes any appointment, owned or not.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	if err := h.store.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

func (h *Handler) PendingApprovals(c *gin.Context) {
	users, err := h.store.PendingUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type ApprovalRequest struct {
	AdminNotes *string `json:"adminNotes"`
}

// ApproveUser flips any account to Approved and records who did it. There
// is no guard against re-approving or approving a rejected account.
func (h *Handler) ApproveUser(c *gin.Context) {
	var req ApprovalRequest
	if c.Request.ContentLength > 0 {
		if verrs := bindJSON(c, &req); verrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return
		}
	}
	ctx := c.Request.Context()

	approver, err := h.store.UserByID(ctx, c.GetString(middleware.UserIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.store.ApproveUser(ctx, c.Param("id"), approver.Email, req.AdminNotes); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user approved successfully"})
}

func (h *Handler) RejectUser(c *gin.Context) {
	var req ApprovalRequest
	if c.Request.ContentLength > 0 {
		if verrs := bindJSON(c, &req); verrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return
		}
	}

	if err := h.store.RejectUser(c.Request.Context(), c.Param("id"), req.AdminNotes); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user rejected"})
}

type CreateDoctorRequest struct {
	FullName        string `json:"fullName" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Specialization  string `json:"specialization" binding:"required"`
	LicenseNumber   string `json:"licenseNumber" binding:"required"`
	Password        string `json:"password" binding:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" binding:"eqfield=Password"`
}

// CreateDoctor provisions a doctor account that skips the approval queue.
func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if verrs := bindJSON(c, &req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	doctor := &model.User{
		ID:             uuid.New().String(),
		Email:          req.Email,
		PasswordHash:   hash,
		FullName:       req.FullName,
		Role:           model.RoleDoctor,
		Specialization: &req.Specialization,
		LicenseNumber:  &req.LicenseNumber,
		ApprovalStatus: model.ApprovalApproved,
	}

	if err := h.store.CreateUser(c.Request.Context(), doctor); err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "registration failed"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, doctor)
}
