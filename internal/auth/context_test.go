package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolve runs UserID inside a request whose locals hold claims.
func resolve(t *testing.T, claims jwt.MapClaims) (uint, error) {
	t.Helper()

	var (
		gotID  uint
		gotErr error
	)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals(LocalsKey, &jwt.Token{Claims: claims})
		}
		gotID, gotErr = UserID(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	return gotID, gotErr
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    uint
		wantErr bool
	}{
		{name: "numeric id", claims: jwt.MapClaims{"id": float64(12)}, want: 12},
		{name: "string id", claims: jwt.MapClaims{"id": "34"}, want: 34},
		{name: "numeric sub fallback", claims: jwt.MapClaims{"sub": "56"}, want: 56},
		{name: "id wins over sub", claims: jwt.MapClaims{"id": float64(7), "sub": "8"}, want: 7},
		{name: "fractional id", claims: jwt.MapClaims{"id": 1.5}, wantErr: true},
		{name: "non-numeric sub", claims: jwt.MapClaims{"sub": "user@example.com"}, wantErr: true},
		{name: "zero id", claims: jwt.MapClaims{"id": float64(0)}, wantErr: true},
		{name: "no claims", claims: jwt.MapClaims{}, wantErr: true},
		{name: "no token", claims: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(t, tt.claims)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIssueToken(t *testing.T) {
	signed, err := IssueToken("secret", 99, time.Hour)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(99), claims["id"])
	assert.Equal(t, "99", claims["sub"])

	_, err = IssueToken("", 1, time.Hour)
	assert.Error(t, err)
}
