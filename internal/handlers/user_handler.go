package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/models"
	"github.com/joshua-takyi/skillshare/internal/services"
)

func RegisterUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}

		err := u.Register(c.Request.Context(), req)
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, models.RegisterErrorResponse{Message: "Username already exists"})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.RegisterErrorResponse{
				Message: "Error registering user",
				Error:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, models.MessageResponse{Message: "Registration successful"})
	}
}

func LoginUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}

		username, err := u.Login(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{Message: "Login successful", Username: username})
	}
}

func GetProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := helpers.StringTrim(c.Param("username"))

		profile, err := u.GetProfile(c.Request.Context(), username)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func UpdateProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := helpers.StringTrim(c.Param("username"))

		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}

		profile, err := u.UpdateProfile(c.Request.Context(), username, body)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}

		c.JSON(http.StatusOK, models.ProfileUpdateResponse{
			Message: "✅ Profile updated successfully",
			User:    *profile,
		})
	}
}
