package httpx

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Legend1hhh/storefront-api/internal/auth"
)

// Context keys set by the middleware below.
const (
	CtxRequestID = "rid"
	CtxUser      = "user"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(CtxRequestID, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get(CtxRequestID)
		log.WithFields(log.Fields{
			"rid":    rid,
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"dur":    time.Since(start).String(),
		}).Info("http request")
	}
}

// CORS allows all origins and answers OPTIONS preflights with an empty 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// Auth verifies the bearer token and attaches the claims to the context.
// Missing or invalid tokens short-circuit with a 401 envelope before any
// route handler runs.
func Auth(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			AbortError(c, 401, "Unauthorized - No token provided")
			return
		}
		claims, err := signer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			AbortError(c, 401, "Unauthorized - Invalid token")
			return
		}
		c.Set(CtxUser, claims)
		c.Next()
	}
}

// AdminOnly must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := User(c); claims == nil || claims.Role != "admin" {
			AbortError(c, 403, "Forbidden - Admin access required")
			return
		}
		c.Next()
	}
}

// User returns the authenticated principal, or nil on public routes.
func User(c *gin.Context) *auth.Claims {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// Recovery converts a handler panic into the uniform 500 envelope. The cause
// is logged server-side and never leaked to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Get(CtxRequestID)
				log.WithFields(log.Fields{"rid": rid, "panic": r}).Error("handler panic")
				AbortError(c, 500, "Internal Server Error")
			}
		}()
		c.Next()
	}
}
