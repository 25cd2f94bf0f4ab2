package api

import (
	"net/http"

	"fstore-be/internal/apperror"
	"fstore-be/internal/user"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	u, err := h.UserSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "user registered", user.ToUserDTO(u))
}
