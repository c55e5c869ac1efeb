package middleware

import (
	"net/http"
	"strings"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextUserKey      = "currentUser"
	ContextRequestIDKey = "requestID"
)

// RequestID присваивает каждому запросу идентификатор для журнала изменений
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Auth разбирает Bearer-токен и кладет пользователя в контекст запроса
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		user, err := authService.Authenticate(parts[1])
		if apperr.IsStorage(err) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireManager пускает дальше только менеджеров
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsManager() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "manager role required"})
			return
		}
		c.Next()
	}
}

// CurrentUser достает аутентифицированного пользователя из контекста
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetRequestID достает идентификатор запроса из контекста
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}
