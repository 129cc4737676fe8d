package handlers

import (
	"net/http"
	"strconv"

	"govconnect/middleware"
	"govconnect/models"
	"govconnect/services/records"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
)

// RecordHandler serves attendees, attachments and feedback of appointments.
type RecordHandler struct {
	Service records.RecordService
}

func (h *RecordHandler) AddAttendeeHandler(c *gin.Context) {
	var req models.AddAttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	attendee, err := h.Service.AddAttendee(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attendee)
}

func (h *RecordHandler) ListAttendeesHandler(c *gin.Context) {
	attendees, err := h.Service.ListAttendees(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendees": attendees})
}

func (h *RecordHandler) RemoveAttendeeHandler(c *gin.Context) {
	if err := h.Service.RemoveAttendee(c.Request.Context(), middleware.ActorFrom(c), c.Param("attendeeId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendee removed"})
}

func (h *RecordHandler) AddFileHandler(c *gin.Context) {
	var req models.AddFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	att, err := h.Service.AddFile(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

func (h *RecordHandler) GetAttachmentHandler(c *gin.Context) {
	att, err := h.Service.GetAttachment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

func (h *RecordHandler) RemoveFileHandler(c *gin.Context) {
	var req models.RemoveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	att, err := h.Service.RemoveFile(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if att == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Last file removed; attachment deleted"})
		return
	}
	c.JSON(http.StatusOK, att)
}

func (h *RecordHandler) CreateFeedbackHandler(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fb, err := h.Service.CreateFeedback(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (h *RecordHandler) GetFeedbackHandler(c *gin.Context) {
	fb, err := h.Service.GetFeedback(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *RecordHandler) UpdateFeedbackHandler(c *gin.Context) {
	var req models.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fb, err := h.Service.UpdateFeedback(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (h *RecordHandler) DeleteFeedbackHandler(c *gin.Context) {
	if err := h.Service.DeleteFeedback(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}

// ListFeedbackHandler pages through feedback, optionally for one ?authority_id=.
func (h *RecordHandler) ListFeedbackHandler(c *gin.Context) {
	filter := models.FeedbackFilter{AuthorityID: c.Query("authority_id")}
	var err error
	if v := c.Query("limit"); v != "" {
		if filter.Limit, err = strconv.ParseInt(v, 10, 64); err != nil {
			utils.JSONError(c, utils.KindValidation, "limit must be an integer")
			return
		}
	}
	if v := c.Query("offset"); v != "" {
		if filter.Offset, err = strconv.ParseInt(v, 10, 64); err != nil {
			utils.JSONError(c, utils.KindValidation, "offset must be an integer")
			return
		}
	}

	out, err := h.Service.ListFeedback(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": out})
}
