// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
)

// AuthController handles registration and login endpoints
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// Signup registers a new student account.
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	student, token, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":         "registration successful",
		"registration_no": student.RegistrationNo,
		"access_token":    token,
	})
}

// Login authenticates a student or faculty member by email.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	token, expiresIn, role, err := c.authService.Login(ctx.Request.Context(), req.EmailID, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "login successful",
		"access_token": token,
		"expires_in":   expiresIn,
		"role":         role,
	})
}

// AdminLogin authenticates an admin by username.
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	token, expiresIn, err := c.authService.AdminLogin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		Message:     "login successful",
		AccessToken: token,
		ExpiresIn:   expiresIn,
	})
}

// CheckAuth confirms the caller's token is valid and echoes its identity.
func (c *AuthController) CheckAuth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"identity":      middleware.Identity(ctx),
		"role":          middleware.Role(ctx),
	})
}

// Logout acknowledges a logout. Access tokens are stateless, so the client
// discards the token; nothing is tracked server side.
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// ResetPassword acknowledges a password reset request. The response is
// identical whether or not the email exists.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	c.authService.RequestPasswordReset(ctx.Request.Context(), req.EmailID)
	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "if the email is registered, reset instructions will be sent",
	})
}
