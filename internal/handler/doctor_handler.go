package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-appointment-api/internal/middleware"
)

// DoctorAppointments lists the caller's assigned appointments, newest
// scheduled first. filter=today keeps [midnight, next midnight); filter=week
// keeps [start of week, +7 days). Lower bounds inclusive, upper exclusive.
func (h *Handler) DoctorAppointments(c *gin.Context) {
	uid := c.GetString(middleware.UserIDKey)

	var from, to *time.Time
	now := time.Now()
	switch c.DefaultQuery("filter", "all") {
	case "all":
	case "today":
		lo := startOfDay(now)
		hi := lo.AddDate(0, 0, 1)
		from, to = &lo, &hi
	case "week":
		// week starts on Sunday: today minus the weekday index
		lo := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		hi := lo.AddDate(0, 0, 7)
		from, to = &lo, &hi
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be all, today or week"})
		return
	}

	apts, err := h.store.ListForDoctor(c.Request.Context(), uid, from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": apts})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Confirmed Completed Cancelled"`
}

// UpdateAppointmentStatus sets any of the four statuses with no transition
// legality check. Only the assigned doctor may do it; anyone else sees 404.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if verrs := bindJSON(c, &req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	uid := c.GetString(middleware.UserIDKey)
	apt, err := h.store.UpdateStatus(c.Request.Context(), c.Param("id"), uid, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) DoctorDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.GetString(middleware.UserIDKey)

	todayStart := startOfDay(time.Now())
	tomorrow := todayStart.AddDate(0, 0, 1)

	today, err := h.store.ListForDoctor(ctx, uid, &todayStart, &tomorrow)
	if err != nil {
		h.fail(c, err)
		return
	}
	upcoming, err := h.store.UpcomingForDoctor(ctx, uid, tomorrow, 10)
	if err != nil {
		h.fail(c, err)
		return
	}
	total, err := h.store.CountForDoctor(ctx, uid)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments":    today,
		"upcomingAppointments": upcoming,
		"totalAppointments":    total,
	})
}
