// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package middlewares

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
)

const SessionCookie = "supplyguard_session"

type session struct {
	userID string
	role   string
}

func (s session) GetUserID() string { return s.userID }
func (s session) GetRole() string   { return s.role }

var NoSession shared.AuthSession = session{}

func NewSession(userID, role string) shared.AuthSession {
	return session{userID: userID, role: role}
}

// SessionTokens issues and verifies the signed session tokens.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionTokens(secret string, ttl time.Duration) (*SessionTokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 characters long")
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl}, nil
}

// NewSessionTokensFromEnv reads SESSION_SECRET and SESSION_TTL (default 24h).
func NewSessionTokensFromEnv() (*SessionTokens, error) {
	ttl, err := time.ParseDuration(shared.GetEnvOr("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	return NewSessionTokens(shared.GetEnvOr("SESSION_SECRET", ""), ttl)
}

func (t *SessionTokens) TTL() time.Duration {
	return t.ttl
}

func (t *SessionTokens) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    ServiceName,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify returns the user id of a valid token.
func (t *SessionTokens) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(ServiceName))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// RoleResolver returns the profile role of a user.
type RoleResolver func(ctx context.Context, userID string) string

func tokenFromRequest(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// SessionMiddleware sets the session of every request. Requests without a
// valid token get NoSession.
func SessionMiddleware(tokens *SessionTokens, roles RoleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := tokenFromRequest(ctx)
			if token == "" {
				shared.SetSession(ctx, NoSession)
				return next(ctx)
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				slog.Warn("could not verify session token", "err", err)
				shared.SetSession(ctx, NoSession)
				return next(ctx)
			}

			shared.SetSession(ctx, NewSession(userID, roles(ctx.Request().Context(), userID)))
			return next(ctx)
		}
	}
}

// RequireSession redirects pages to the sign in and rejects api calls
// without a session.
func RequireSession(signInPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if shared.GetUserID(ctx) != "" {
				return next(ctx)
			}
			if WantsHTML(ctx) {
				return ctx.Redirect(http.StatusSeeOther, signInPath)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "no session")
		}
	}
}

func SetSessionCookie(ctx echo.Context, token string, ttl time.Duration) {
	ctx.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   ctx.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func ClearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
