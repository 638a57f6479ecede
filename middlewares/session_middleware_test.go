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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/l3montree-dev/supplyguard/accesscontrol"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-long-test-secret"

func managerRole(ctx context.Context, userID string) string {
	return "Manager"
}

func TestSessionTokens(t *testing.T) {
	_, err := NewSessionTokens("short", time.Hour)
	assert.Error(t, err)

	tokens, err := NewSessionTokens(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)
	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other, _ := NewSessionTokens("another-long-test-secret", time.Hour)
	_, err = other.Verify(token)
	assert.Error(t, err)

	expired, _ := NewSessionTokens(testSecret, -time.Minute)
	token, err = expired.Issue("user-1")
	require.NoError(t, err)
	_, err = tokens.Verify(token)
	assert.Error(t, err)
}

func TestSessionMiddleware(t *testing.T) {
	tokens, err := NewSessionTokens(testSecret, time.Hour)
	require.NoError(t, err)
	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	run := func(req *http.Request) shared.AuthSession {
		e := echo.New()
		c := e.NewContext(req, httptest.NewRecorder())
		var got shared.AuthSession
		err := SessionMiddleware(tokens, managerRole)(func(ctx echo.Context) error {
			got = shared.GetSession(ctx)
			return nil
		})(c)
		require.NoError(t, err)
		return got
	}

	t.Run("should read the session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		sess := run(req)
		assert.Equal(t, "user-1", sess.GetUserID())
		assert.Equal(t, "Manager", sess.GetRole())
	})

	t.Run("should read a bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/suppliers", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		assert.Equal(t, "user-1", run(req).GetUserID())
	})

	t.Run("should set no session for an invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
		assert.Equal(t, NoSession, run(req))
	})

	t.Run("should set no session without a token", func(t *testing.T) {
		assert.Equal(t, NoSession, run(httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

func TestRequireSession(t *testing.T) {
	e := echo.New()
	handler := RequireSession("/auth")(func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/suppliers", nil), rec)
	shared.SetSession(c, NoSession)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get(echo.HeaderLocation))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/suppliers", nil), httptest.NewRecorder())
	shared.SetSession(c, NoSession)
	err := handler(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/suppliers", nil), rec)
	shared.SetSession(c, NewSession("user-1", "Viewer"))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAccessControl(t *testing.T) {
	rbac, err := accesscontrol.NewStaticRBAC()
	require.NoError(t, err)
	e := echo.New()
	handler := AccessControl(rbac, accesscontrol.ObjectSupplier, accesscontrol.ActionWrite)(func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusNoContent)
	})

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/suppliers", nil), httptest.NewRecorder())
	shared.SetSession(c, NewSession("user-1", "Viewer"))
	err = handler(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/suppliers", nil), rec)
	shared.SetSession(c, NewSession("user-1", "Manager"))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestToHTTPError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{shared.NewValidationError("name", "Must be at least 2 characters"), http.StatusUnprocessableEntity},
		{&shared.NotFoundError{Entity: "Supplier", ID: "1"}, http.StatusNotFound},
		{&shared.ConflictError{Entity: "System node", Reason: "still referenced"}, http.StatusConflict},
		{shared.NewTransportError("select", "suppliers", errors.New("connection refused")), http.StatusBadGateway},
		{echo.NewHTTPError(http.StatusTeapot), http.StatusTeapot},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, ToHTTPError(c.err).Code, c.err.Error())
	}
}
