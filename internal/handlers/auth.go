package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stedonnelly/accountd/internal/middleware"
	"github.com/stedonnelly/accountd/internal/models"
	"github.com/stedonnelly/accountd/internal/service"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		h.log.Error().Err(err).Msg("authenticate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	cookieValue, err := h.auth.IssueSession(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("issue session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	http.SetCookie(c.Writer, h.policy.SessionCookie(cookieValue))
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout removes the session the presented cookie references, then clears
// the cookie no matter what. Safe to call while already logged out.
func (h HandlerSet) Logout(c *gin.Context) {
	raw, err := c.Cookie(h.policy.Name)
	if err != nil {
		raw = ""
	}

	if err := h.auth.EndSession(c.Request.Context(), raw); err != nil {
		h.log.Error().Err(err).Msg("end session failed")
	}

	http.SetCookie(c.Writer, h.policy.ClearingCookie())
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Me(c *gin.Context) {
	userVal, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	user, ok := userVal.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
