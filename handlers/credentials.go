package handlers

import (
	"net/http"
	"strconv"

	"govconnect/middleware"
	"govconnect/models"
	"govconnect/services/credential"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CredentialHandler struct {
	Issuer   credential.Issuer
	Verifier credential.Verifier
}

func descriptorFromQuery(c *gin.Context) models.CredentialDescriptor {
	return models.CredentialDescriptor{
		ServiceType: c.Query("service_type"),
		Location:    c.Query("location"),
	}
}

// IssueHandler returns the signed QR payload and receipt of an appointment.
func (h *CredentialHandler) IssueHandler(c *gin.Context) {
	issued, err := h.Issuer.IssueForAppointment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), descriptorFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issued)
}

// QRCodeHandler renders the credential of an appointment as a PNG (?size= pixels).
func (h *CredentialHandler) QRCodeHandler(c *gin.Context) {
	size := 256
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 64 || n > 1024 {
			utils.JSONError(c, utils.KindValidation, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	issued, err := h.Issuer.IssueForAppointment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), descriptorFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	png, err := h.Issuer.QRCodePNG(issued.QRData, size)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// VerifyHandler checks a scanned credential. Rejected credentials are a normal
// outcome and answer 200 with valid=false; only malformed input is an error.
func (h *CredentialHandler) VerifyHandler(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.Verifier.Verify(req.QRCodeData)
	if result == nil {
		utils.RespondError(c, err)
		return
	}
	if err != nil {
		getLogger(c).Info("Credential rejected", zap.String("reason", result.Reason), zap.Error(err))
	}
	c.JSON(http.StatusOK, result)
}
