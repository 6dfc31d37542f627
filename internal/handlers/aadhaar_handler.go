package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillshare/internal/models"
	"github.com/joshua-takyi/skillshare/internal/services"
)

func RequestAadhaarOtp(a *services.AadhaarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username      string `json:"username"`
			AadhaarNumber string `json:"aadhaarNumber"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}

		err := a.RequestOtp(c.Request.Context(), req.Username, req.AadhaarNumber)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}

		c.JSON(http.StatusOK, models.MessageResponse{
			Message: "OTP has been sent to your registered contact (simulated).",
		})
	}
}

func SubmitAadhaarOtp(a *services.AadhaarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Otp      string `json:"otp"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}

		err := a.SubmitOtp(c.Request.Context(), req.Username, req.Otp)
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		case errors.Is(err, services.ErrInvalidOrExpired):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "❌ Invalid or expired OTP."})
		case err != nil:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		default:
			c.JSON(http.StatusOK, models.MessageResponse{Message: "✅ Aadhaar verified successfully."})
		}
	}
}
