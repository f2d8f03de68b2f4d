package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/auth"
	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/user"
)

// registerRequest is the signup payload.
// swagger:model RegisterRequest
type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  user.Profile `json:"user"`
	Token string       `json:"token"`
}

func registerHandler(users user.Repository, signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, 400, "invalid JSON body")
			return
		}
		if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
			httpx.Error(c, 400, "Please provide all required fields")
			return
		}
		if len(req.Password) < 8 {
			httpx.Error(c, 400, "Password must be at least 8 characters")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			httpx.Error(c, 500, "Registration failed")
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        req.Phone,
			Role:         "customer",
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			if err == user.ErrAlreadyExist {
				httpx.Error(c, 409, "Email already registered")
				return
			}
			log.WithError(err).Error("register failed")
			httpx.Error(c, 500, "Registration failed")
			return
		}

		token, err := signer.Sign(u.ID, u.Email, u.Role)
		if err != nil {
			httpx.Error(c, 500, "Registration failed")
			return
		}
		httpx.Created(c, authResponse{User: u.Profile(), Token: token}, "Registration successful")
	}
}

func loginHandler(users user.Repository, signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			httpx.Error(c, 400, "Please provide email and password")
			return
		}

		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			// same message for unknown email and bad password
			httpx.Error(c, 401, "Invalid credentials")
			return
		}

		token, err := signer.Sign(u.ID, u.Email, u.Role)
		if err != nil {
			httpx.Error(c, 500, "Login failed")
			return
		}
		httpx.OK(c, authResponse{User: u.Profile(), Token: token}, "Login successful")
	}
}

func profileHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			httpx.Error(c, 404, "User not found")
			return
		}
		httpx.OK(c, u.Profile(), "")
	}
}

func updateProfileHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		var req struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Phone     string `json:"phone"`
			Avatar    string `json:"avatar"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, 400, "invalid JSON body")
			return
		}
		u := &user.User{
			ID:        claims.UserID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Avatar:    req.Avatar,
		}
		if err := users.UpdateProfile(c.Request.Context(), u); err != nil {
			log.WithError(err).Error("profile update failed")
			httpx.Error(c, 500, "Failed to update profile")
			return
		}
		out, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			httpx.Error(c, 404, "User not found")
			return
		}
		httpx.OK(c, out.Profile(), "Profile updated successfully")
	}
}

func changePasswordHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, 400, "invalid JSON body")
			return
		}
		if len(req.NewPassword) < 8 {
			httpx.Error(c, 400, "Password must be at least 8 characters")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			httpx.Error(c, 404, "User not found")
			return
		}
		if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
			httpx.Error(c, 400, "Current password is incorrect")
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			httpx.Error(c, 500, "Failed to change password")
			return
		}
		if err := users.UpdatePassword(c.Request.Context(), claims.UserID, hash); err != nil {
			log.WithError(err).Error("password update failed")
			httpx.Error(c, 500, "Failed to change password")
			return
		}
		httpx.OK(c, nil, "Password changed successfully")
	}
}

// forgotPasswordHandler always reports success so the endpoint cannot be
// used to probe registered emails. Actual delivery is out of scope.
func forgotPasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		_ = c.ShouldBindJSON(&req)
		httpx.OK(c, nil, "If an account exists, a reset link has been sent")
	}
}
