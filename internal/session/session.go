// Package session resolves inbound request credentials to an identity.
// Handlers only ever see the Provider interface; the JWT machinery behind
// it is an implementation detail.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/repo"
)

type Identity struct {
	ID    uint
	Name  string
	Email string
	Role  models.Role
}

// Provider returns the authenticated identity for a request, or nil when
// the request carries no valid credentials. An error means the lookup
// itself failed, not that the caller is anonymous.
type Provider interface {
	Resolve(c echo.Context) (*Identity, error)
}

const AccessTokenTTL = 15 * time.Minute
const RefreshTokenTTL = 7 * 24 * time.Hour

type JWTProvider struct {
	Repo   *repo.GormRepo
	Secret []byte
}

func (p *JWTProvider) Resolve(c echo.Context) (*Identity, error) {
	raw := tokenFromRequest(c)
	if raw == "" {
		return nil, nil
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, nil
	}

	user, err := p.Repo.GetUser(c.Request().Context(), uint(sub))
	if err != nil {
		return nil, nil
	}

	return &Identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func SignAccessToken(userID uint, role models.Role, secret []byte, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  exp.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func SignRefreshToken(userID uint, secret []byte, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"typ": "refresh",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

var ErrNotRefreshToken = errors.New("not a refresh token")

func ParseRefreshToken(raw string, secret []byte) (uint, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return 0, ErrNotRefreshToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("missing subject")
	}
	return uint(sub), nil
}
