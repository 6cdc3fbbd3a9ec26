package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signUpRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email" binding:"required"`
	Password  string          `json:"password" binding:"required"`
	Role      model.Role      `json:"role"`
	Phone     string          `json:"phone"`
	Addresses []model.Address `json:"addresses"`
}

// SignUp registers a customer or vendor account.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid signup payload", gin.H{"details": err.Error()})
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), service.SignUpInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Phone:     req.Phone,
		Addresses: req.Addresses,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", gin.H{"user": user})
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn exchanges credentials for a session token.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid signin payload", gin.H{"details": err.Error()})
		return
	}

	token, user, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Signed in successfully", gin.H{"token": token, "user": user})
}

// SignOut revokes the presented token.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Signed out successfully", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword emails a password reset link.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request payload", gin.H{"details": err.Error()})
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Password reset email sent", nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request payload", gin.H{"details": err.Error()})
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Password reset successfully", nil)
}
