package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-appointment-api/internal/apperr"
	"clinic-appointment-api/internal/appointmentid"
	"clinic-appointment-api/internal/middleware"
	"clinic-appointment-api/internal/model"
	"clinic-appointment-api/internal/store"
)

const dashboardLimit = 5

// two concurrent bookings can compute the same next ID; the primary key
// rejects the loser and we take another number
const bookRetries = 3

type BookRequest struct {
	PatientName     string `json:"patientName" binding:"required"`
	Department      string `json:"department" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req BookRequest
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

	ctx := c.Request.Context()
	uid := c.GetString(middleware.UserIDKey)

	var apt *model.Appointment
	for attempt := 0; attempt < bookRetries; attempt++ {
		maxID, err := h.store.MaxAppointmentID(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}

		apt = &model.Appointment{
			ID:           appointmentid.Next(maxID),
			PatientName:  req.PatientName,
			Department:   req.Department,
			Date:         date,
			DoctorID:     &req.DoctorID,
			ClientUserID: &uid,
			Status:       model.StatusPending,
		}

		err = h.store.CreateAppointment(ctx, apt)
		if err == nil {
			c.JSON(http.StatusCreated, apt)
			return
		}
		if !store.IsUniqueViolation(err) {
			h.fail(c, err)
			return
		}
	}

	c.JSON(http.StatusConflict, gin.H{"error": "could not allocate appointment id, try again"})
}

func (h *Handler) MyAppointments(c *gin.Context) {
	uid := c.GetString(middleware.UserIDKey)
	apts, err := h.store.ListForClient(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": apts})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	uid := c.GetString(middleware.UserIDKey)
	err := h.store.DeleteForClient(c.Request.Context(), c.Param("id"), uid)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "appointment not found or you don't have permission to cancel it",
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled successfully"})
}

func (h *Handler) ClientDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.GetString(middleware.UserIDKey)
	today := startOfDay(time.Now())

	upcoming, err := h.store.UpcomingForClient(ctx, uid, today, dashboardLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	recent, err := h.store.RecentForClient(ctx, uid, dashboardLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upcomingAppointments": upcoming,
		"recentAppointments":   recent,
	})
}

// DoctorsByDepartment backs the booking form's doctor dropdown.
func (h *Handler) DoctorsByDepartment(c *gin.Context) {
	department := c.Query("department")
	doctors, err := h.store.DoctorsByDepartment(c.Request.Context(), department)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		spec := ""
		if d.Specialization != nil {
			spec = *d.Specialization
		}
		out = append(out, gin.H{
			"id":   d.ID,
			"name": "Dr. " + d.FullName + " - " + spec,
		})
	}
	c.JSON(http.StatusOK, out)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
