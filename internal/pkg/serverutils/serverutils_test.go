package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("thing not found")

type sample struct {
	Name string `json:"name" validate:"required,max=5"`
}

func decode(t *testing.T, body io.Reader) Response[any] {
	t.Helper()
	var res Response[any]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(ErrorMapping{Err: errMissing, Status: fiber.StatusNotFound}))
	app.Get("/mapped", func(*fiber.Ctx) error { return fmt.Errorf("lookup: %w", errMissing) })
	app.Get("/fiber", func(*fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "busy") })
	app.Get("/invalid", func(*fiber.Ctx) error { return ValidateRequest(sample{}) })
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/ok", func(ctx *fiber.Ctx) error { return ctx.JSON(SuccessResponse("fine", 1)) })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/mapped", fiber.StatusNotFound, "thing not found"},
		{"/fiber", fiber.StatusConflict, "busy"},
		{"/invalid", fiber.StatusBadRequest, "Name is required"},
		{"/boom", fiber.StatusInternalServerError, "Internal server error"},
		{"/ok", fiber.StatusOK, "fine"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.status == fiber.StatusOK, body.Success)
		})
	}
}

func TestValidateRequestMax(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Name: "abc"}))
	assert.Error(t, ValidateRequest(sample{Name: "abcdef"}))
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "s3cret"
	valid := sign(t, secret, jwt.MapClaims{"user_id": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
	wrongKey := sign(t, "other", jwt.MapClaims{"user_id": "user-1"})
	noUser := sign(t, secret, jwt.MapClaims{"role": "admin"})

	tests := []struct {
		name   string
		secret string
		header string
		query  string
		status int
		user   string
	}{
		{"auth disabled", "", "", "", fiber.StatusOK, AnonymousUser},
		{"missing token", secret, "", "", fiber.StatusUnauthorized, ""},
		{"bearer header", secret, "Bearer " + valid, "", fiber.StatusOK, "user-1"},
		{"query token", secret, "", valid, fiber.StatusOK, "user-1"},
		{"wrong key", secret, "Bearer " + wrongKey, "", fiber.StatusUnauthorized, ""},
		{"no user claim", secret, "Bearer " + noUser, "", fiber.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(JwtMiddleware(tt.secret))
			app.Get("/me", func(ctx *fiber.Ctx) error { return ctx.SendString(UserID(ctx)) })

			target := "/me"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest("GET", target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.user, string(body))
			}
		})
	}
}
