package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/dtos"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/middleware"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/services"
	"github.com/gin-gonic/gin"
)

// Cookie carrying the registration token between /register and /verify-otp.
const otpCookie = "otp_token"

type AuthHandler struct {
	AuthService *services.AuthService
	SessionTTL  time.Duration
	OTPTTL      time.Duration
}

func NewAuthHandler(auth *services.AuthService, sessionTTL, otpTTL time.Duration) *AuthHandler {
	return &AuthHandler{AuthService: auth, SessionTTL: sessionTTL, OTPTTL: otpTTL}
}

// Register is the POST /auth/register endpoint. On success the OTP has been
// mailed and the registration token rides back as a cookie.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, err := h.AuthService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "You already signed up with that email. Please log in."})
		case errors.Is(err, services.ErrDeliveryFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send OTP. Please try again."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed: " + err.Error()})
		}
		return
	}

	c.SetCookie(otpCookie, token, int(h.OTPTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusAccepted, gin.H{"message": "OTP sent to your email."})
}

// VerifyOTP is the POST /auth/verify-otp endpoint.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dtos.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, err := c.Cookie(otpCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No registration in progress."})
		return
	}

	sess, user, err := h.AuthService.VerifyOTP(c.Request.Context(), token, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OTP. Please try again."})
		case errors.Is(err, services.ErrTooManyAttempts):
			c.SetCookie(otpCookie, "", -1, "/", "", false, true)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Please register again."})
		case errors.Is(err, services.ErrNoPending):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No registration in progress."})
		case errors.Is(err, services.ErrDuplicateEmail):
			c.SetCookie(otpCookie, "", -1, "/", "", false, true)
			c.JSON(http.StatusConflict, gin.H{"error": "You already signed up with that email. Please log in."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed: " + err.Error()})
		}
		return
	}

	c.SetCookie(otpCookie, "", -1, "/", "", false, true)
	c.SetCookie(middleware.SessionCookie, sess.Token, int(h.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusCreated, dtos.AuthResponse{UserID: user.ID, Name: user.Name, Email: user.Email})
}

// Login is the POST /auth/login endpoint.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	sess, user, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong email or password."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed: " + err.Error()})
		return
	}

	c.SetCookie(middleware.SessionCookie, sess.Token, int(h.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, dtos.AuthResponse{UserID: user.ID, Name: user.Name, Email: user.Email})
}

// Logout is the POST /auth/logout endpoint (behind the session guard).
func (h *AuthHandler) Logout(c *gin.Context) {
	h.AuthService.Logout(middleware.SessionToken(c))
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
