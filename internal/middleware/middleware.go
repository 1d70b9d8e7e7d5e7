package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wishwell/internal/config"
	"wishwell/internal/database"
	"wishwell/internal/httperr"
	"wishwell/internal/logger"
	"wishwell/internal/token"
)

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired verifies the bearer token and loads the user behind it. The
// token's signature and expiry are re-checked on every request; a token whose
// user no longer exists is rejected the same way as a bad token.
func AuthRequired(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			httperr.Respond(c, httperr.Unauthorized("authentication required"))
			c.Abort()
			return
		}

		claims, err := token.Verify(tokenString, []byte(cfg.JWTSecret))
		if err != nil {
			httperr.Respond(c, httperr.Unauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		user, err := database.GetUserByID(db, claims.UserID)
		if err != nil {
			httperr.Respond(c, httperr.Unauthorized("invalid access token"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// AuthOptional resolves the requesting user if a valid bearer token is
// present, and stays silent otherwise. Used on public endpoints where an
// authenticated caller may see more.
func AuthOptional(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := token.Verify(tokenString, []byte(cfg.JWTSecret)); err == nil {
				if user, err := database.GetUserByID(db, claims.UserID); err == nil {
					c.Set("user", user)
					c.Set("user_id", user.ID)
				}
			}
		}
		c.Next()
	}
}

func CORS(allowedOrigins string) gin.HandlerFunc {
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := false
		for _, allowedOrigin := range origins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SecurityHeaders(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.IsDevelopment() {
			c.Next()
			return
		}

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Next()
	}
}

func LogRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request", logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
	}
}

func AddDBContext(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}
