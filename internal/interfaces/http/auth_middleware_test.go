package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babilsoft/babil-erp/pkg/jwt"
)

const testSecret = "test-secret-for-middleware"

func buildTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	group := app.Group("/", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		group = group.Group("/", RequireRole(roles...))
	}
	group.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": GetUserID(c),
			"role":    GetRole(c),
		})
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", role, "babil-erp", 30)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp()

	status, body := doRequest(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp()

	status, body := doRequest(t, app, "Token abc123")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp()

	status, body := doRequest(t, app, "Bearer not.a.jwt")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_ValidTokenLoadsClaims(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, "seller")

	status, body := doRequest(t, app, "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "seller", body["role"])
}

func TestRequireRole_AllowedRole(t *testing.T) {
	app := buildTestApp("admin", "seller")
	token := tokenForRole(t, "seller")

	status, _ := doRequest(t, app, "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_WrongRole(t *testing.T) {
	app := buildTestApp("admin")
	token := tokenForRole(t, "seller")

	status, body := doRequest(t, app, "Bearer "+token)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_EmptyRoleToken(t *testing.T) {
	app := buildTestApp("admin")
	token := tokenForRole(t, "")

	status, body := doRequest(t, app, "Bearer "+token)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestJWT_GenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-42", "admin", "babil-erp", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, "admin", role)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-42", "admin", "babil-erp", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("another-secret", token)
	assert.Error(t, err)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
		UserID: "user-42",
		Role:   "admin",
	}
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	token, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)

	app := buildTestApp()
	status, body := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}
