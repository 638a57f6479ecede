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

package controllers

import (
	"net/http"
	"strings"

	"github.com/l3montree-dev/supplyguard/middlewares"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

const AuthPath = "/auth"

type authView struct {
	Error string
}

// AuthController signs users in with a token issued by the cli.
type AuthController struct {
	pageController
	tokens *middlewares.SessionTokens
}

func NewAuthController(tokens *middlewares.SessionTokens, inbox *synchronization.Inbox) *AuthController {
	return &AuthController{pageController: pageController{inbox: inbox}, tokens: tokens}
}

func (c *AuthController) Page(ctx shared.Context) error {
	if shared.GetUserID(ctx) != "" {
		return redirect(ctx, "/")
	}
	return c.render(ctx, http.StatusOK, "auth", "Sign in", authView{})
}

func (c *AuthController) SignIn(ctx shared.Context) error {
	token := strings.TrimSpace(ctx.FormValue("token"))
	if _, err := c.tokens.Verify(token); err != nil {
		return c.render(ctx, http.StatusUnauthorized, "auth", "Sign in", authView{Error: "The session token is invalid or expired"})
	}
	middlewares.SetSessionCookie(ctx, token, c.tokens.TTL())
	return redirect(ctx, "/")
}

func (c *AuthController) SignOut(ctx shared.Context) error {
	middlewares.ClearSessionCookie(ctx)
	return redirect(ctx, AuthPath)
}
