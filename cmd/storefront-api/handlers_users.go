package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/httpx"
	"github.com/Legend1hhh/storefront-api/internal/user"
)

func listUsersHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pageParams(c, 20)

		out, total, err := users.ListCustomers(c.Request.Context(), limit, offset)
		if err != nil {
			log.WithError(err).Error("user list failed")
			httpx.Error(c, 500, "Failed to fetch users")
			return
		}
		profiles := make([]user.Profile, 0, len(out))
		for i := range out {
			profiles = append(profiles, out[i].Profile())
		}
		httpx.OK(c, httpx.NewPage(profiles, total, page, limit), "")
	}
}

// getUserHandler lets a user read their own record; admins can read anyone.
func getUserHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpx.User(c)
		id := c.Param("id")
		if claims.Role != "admin" && claims.UserID != id {
			httpx.Error(c, 403, "Access denied")
			return
		}

		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, 404, "User not found")
			return
		}
		httpx.OK(c, u.Profile(), "")
	}
}
