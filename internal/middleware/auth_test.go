package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-schedule-api/internal/config"
	"hr-schedule-api/internal/repository"
	"hr-schedule-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *service.AuthService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Одна in-memory база на все соединения пула
	sqlDB.SetMaxOpenConns(1)

	userRepo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
	}
	authService := service.NewAuthService(userRepo, cfg, logger)

	r := gin.New()
	r.GET("/ping", Auth(authService), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r, authService, db
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, authService, _ := newAuthRouter(t)

	_, err := authService.Register("anna@example.com", "secret123", "")
	require.NoError(t, err)
	token, err := authService.Login("anna@example.com", "secret123")
	require.NoError(t, err)

	require.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer not-a-token").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(r, "Basic "+token).Code)
	require.Equal(t, http.StatusOK, doRequest(r, "Bearer "+token).Code)
}

func TestAuthMiddlewareStorageFailure(t *testing.T) {
	r, authService, db := newAuthRouter(t)

	_, err := authService.Register("anna@example.com", "secret123", "")
	require.NoError(t, err)
	token, err := authService.Login("anna@example.com", "secret123")
	require.NoError(t, err)

	// Валидный токен при недоступном хранилище - это сбой сервера, не 401
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	require.Equal(t, http.StatusInternalServerError, doRequest(r, "Bearer "+token).Code)
}
