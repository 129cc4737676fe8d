package handlers

import (
	"net/http"

	"govconnect/middleware"
	"govconnect/models"
	"govconnect/services/booking"
	"govconnect/services/records"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Allocation booking.AllocationService
	Records    records.RecordService
}

// BookHandler books a slot for the calling citizen. The user id always comes from the
// session, never from the body.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.UserID = middleware.ActorFrom(c).UserID

	appt, err := h.Allocation.Book(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.BookingResponse{
		AppointmentID: appt.ID,
		AuthorityID:   appt.AuthorityID,
		Date:          appt.Date,
		TimeSlot:      appt.TimeSlot,
	})
}

func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Allocation.Cancel(c.Request.Context(), req.AppointmentID, req.Reason, middleware.ActorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Appointment cancelled successfully",
		"appointment_id": appt.ID,
	})
}

func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	appts, err := h.Records.ListAppointments(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	appt, err := h.Records.GetAppointment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) CommentHandler(c *gin.Context) {
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Records.SetOfficialComment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
