package handlers

import (
	"net/http"

	"govconnect/middleware"
	"govconnect/models"
	"govconnect/services/timeslot"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
)

type TimeslotHandler struct {
	Service timeslot.LedgerService
}

// ListOpenSlotsHandler returns an authority's open slots, optionally for one ?date=.
func (h *TimeslotHandler) ListOpenSlotsHandler(c *gin.Context) {
	entries, err := h.Service.ListOpenSlots(c.Request.Context(), c.Param("authorityId"), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"free_times": entries})
}

// ListOwnSlotsHandler lists every open slot of the calling official's authority.
func (h *TimeslotHandler) ListOwnSlotsHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	entries, err := h.Service.ListOpenSlots(c.Request.Context(), actor.AuthorityID, c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"free_times": entries})
}

func (h *TimeslotHandler) PublishSlotHandler(c *gin.Context) {
	var req models.PublishSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	label, err := h.Service.PublishSlot(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Time slot added",
		"date":    req.Date,
		"label":   label,
	})
}

func (h *TimeslotHandler) PublishSlotsHandler(c *gin.Context) {
	var req models.PublishSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	results, err := h.Service.PublishSlots(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "results": results})
}

func (h *TimeslotHandler) RemoveSlotHandler(c *gin.Context) {
	var body struct {
		Date  string `json:"date" binding:"required"`
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if err := h.Service.RemoveSlot(c.Request.Context(), actor, actor.AuthorityID, body.Date, body.Label); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot removed"})
}
