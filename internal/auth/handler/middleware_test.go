package handler_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/task-service/internal/auth/domain"
	"github.com/taskhive/task-service/internal/auth/handler"
	"github.com/taskhive/task-service/internal/auth/service"
	apperror "github.com/taskhive/task-service/internal/errors"
	"github.com/taskhive/task-service/internal/mocks"
)

func TestRequireAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	tokenService := service.NewTokenService("test-secret", 30)
	userService := service.NewUserService(mockRepo, tokenService, 6)
	authHandler := handler.NewAuthHandler(userService)

	user := &domain.User{ID: "user-123", Email: "alice@example.com"}

	app := fiber.New()
	app.Get("/me", authHandler.RequireAuth, func(c *fiber.Ctx) error {
		current := handler.CurrentUser(c)
		return c.JSON(fiber.Map{"id": current.ID})
	})

	t.Run("no authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Basic YWxpY2U6c2VjcmV0")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := tokenService.Generate(user.ID, user.Email)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, _, err := tokenService.Generate(user.ID, user.Email)
		require.NoError(t, err)

		last := token[len(token)-1]
		flipped := byte('A')
		if last == 'A' {
			flipped = 'B'
		}

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token[:len(token)-1]+string(flipped))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := service.NewTokenService("test-secret", -1)
		token, _, err := expired.Generate(user.ID, user.Email)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("store unavailable surfaces as 503, not 401", func(t *testing.T) {
		token, _, err := tokenService.Generate(user.ID, user.Email)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).
			Return(nil, apperror.ErrStoreUnavailable)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}
