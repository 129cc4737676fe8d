package handlers

import (
	"net/http"

	authorityRepo "govconnect/database/repository/authority"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
)

// AuthorityHandler serves the authority directory.
type AuthorityHandler struct {
	Repo authorityRepo.AuthorityRepository
}

func (h *AuthorityHandler) ListHandler(c *gin.Context) {
	var (
		err error
		out any
	)
	if category := c.Query("category"); category != "" {
		out, err = h.Repo.GetByCategory(c.Request.Context(), category)
	} else {
		out, err = h.Repo.GetAll(c.Request.Context())
	}
	if err != nil {
		utils.RespondError(c, utils.Internal(err, "failed to list authorities"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"authorities": out})
}

func (h *AuthorityHandler) GetHandler(c *gin.Context) {
	authority, err := h.Repo.GetByID(c.Request.Context(), c.Param("authorityId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authority)
}
