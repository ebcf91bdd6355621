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

const refreshTokenTTL = 30 * 24 * time.Hour

type RegisterRequest struct {
	FullName        string  `json:"fullName" binding:"required,max=100"`
	Email           string  `json:"email" binding:"required,email"`
	Role            string  `json:"role" binding:"required"`
	Specialization  *string `json:"specialization"`
	LicenseNumber   *string `json:"licenseNumber"`
	Password        string  `json:"password" binding:"required,min=6,max=100"`
	ConfirmPassword string  `json:"confirmPassword" binding:"eqfield=Password"`
}

// Register creates an account in Pending state. Nobody self-registers into
// an approved account, whatever role they ask for.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if verrs := bindJSON(c, &req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	role := req.Role
	if !model.ValidRole(role) {
		role = model.RoleClient
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	u := &model.User{
		ID:             uuid.New().String(),
		Email:          req.Email,
		PasswordHash:   hash,
		FullName:       req.FullName,
		Role:           role,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		ApprovalStatus: model.ApprovalPending,
	}

	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		if store.IsUniqueViolation(err) {
			// dup email, but don't reveal that
			c.JSON(http.StatusConflict, gin.H{"error": "registration failed"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful! Please wait for admin approval before logging in.",
		"userId":  u.ID,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if verrs := bindJSON(c, &req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	ctx := c.Request.Context()

	u, err := h.store.UserByEmail(ctx, req.Email)
	if err == nil {
		// approval gate runs before the credential check, so the caller
		// gets the workflow message rather than a generic failure
		switch u.ApprovalStatus {
		case model.ApprovalPending:
			h.fail(c, apperr.ErrPendingApproval)
			return
		case model.ApprovalRejected:
			h.fail(c, apperr.ErrRejected)
			return
		}
	}

	if u == nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		h.fail(c, apperr.ErrInvalidCredentials)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.fail(c, err)
		return
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.store.CreateRefreshToken(ctx, u.ID, refreshHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        tok,
		"refreshToken": rawRefresh,
		"userId":       u.ID,
		"name":         u.FullName,
		"role":         u.Role,
		"redirect":     homeFor(u.Role),
	})
}

// homeFor picks the post-login destination by role.
func homeFor(role string) string {
	switch role {
	case model.RoleAdmin:
		return "/admin/dashboard"
	case model.RoleDoctor:
		return "/doctor/dashboard"
	case model.RoleClient:
		return "/client/dashboard"
	}
	return "/"
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if verrs := bindJSON(c, &req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	ctx := c.Request.Context()

	rt, err := h.store.RefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	u, err := h.store.UserByID(ctx, rt.UserID)
	if err != nil || u.ApprovalStatus != model.ApprovalApproved {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.fail(c, err)
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(ctx, rt.ID, newID, u.ID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.fail(c, err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "refreshToken": newRaw})
}

func (h *Handler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.UserIDKey)
	if err := h.store.RevokeAllRefreshTokens(c.Request.Context(), uid); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
