package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/features/users/auth/dto"
	"readingroom_backend/internals/features/users/auth/service"
	helper "readingroom_backend/internals/helpers"
)

type AuthController struct {
	Service *service.AuthService
	// Secure cookies need HTTPS; off for local development.
	SecureCookies bool
}

func NewAuthController(svc *service.AuthService, secureCookies bool) *AuthController {
	return &AuthController{Service: svc, SecureCookies: secureCookies}
}

func clientInfo(c *fiber.Ctx) service.ClientInfo {
	return service.ClientInfo{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

// setTokenCookies returns the CSRF token the client must echo in X-CSRF-Token.
func (ac *AuthController) setTokenCookies(c *fiber.Ctx, pair *service.TokenPair) string {
	csrf := helper.NewCSRFToken()
	c.Cookie(ac.cookie("access_token", pair.AccessToken, pair.AccessExpiresAt))
	c.Cookie(ac.cookie("refresh_token", pair.RefreshToken, pair.RefreshExpiresAt))
	// readable by the frontend script
	ck := ac.cookie(helper.CSRFCookie, csrf, pair.RefreshExpiresAt)
	ck.HTTPOnly = false
	c.Cookie(ck)
	return csrf
}

func (ac *AuthController) clearTokenCookies(c *fiber.Ctx) {
	expired := time.Unix(0, 0)
	for _, name := range []string{"access_token", "refresh_token", helper.CSRFCookie} {
		ck := ac.cookie(name, "", expired)
		ck.MaxAge = -1
		c.Cookie(ck)
	}
}

func (ac *AuthController) cookie(name, value string, expires time.Time) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if ac.SecureCookies {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: sameSite,
		Path:     "/",
		Expires:  expires,
	}
}

func loginPayload(res *service.LoginResult, csrf string) fiber.Map {
	return fiber.Map{
		"user":               dto.FromUser(res.User),
		"csrf_token":         csrf,
		"access_token":       res.Tokens.AccessToken,
		"refresh_token":      res.Tokens.RefreshToken,
		"access_expires_at":  res.Tokens.AccessExpiresAt,
		"refresh_expires_at": res.Tokens.RefreshExpiresAt,
	}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := ac.Service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Registration successful", dto.FromUser(user))
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := ac.Service.Login(c.UserContext(), req, clientInfo(c))
	if err != nil {
		return err
	}
	csrf := ac.setTokenCookies(c, res.Tokens)
	return helper.JsonOK(c, "Login successful", loginPayload(res, csrf))
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := ac.Service.LoginGoogle(c.UserContext(), req.IDToken, clientInfo(c))
	if err != nil {
		return err
	}
	csrf := ac.setTokenCookies(c, res.Tokens)
	return helper.JsonOK(c, "Login successful", loginPayload(res, csrf))
}

func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := ac.Service.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", dto.FromUser(user))
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := ac.Service.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Profile updated", dto.FromUser(user))
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := ac.Service.ChangePassword(c.UserContext(), userID, req); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Password changed", nil)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	refresh := helper.GetRefreshTokenFromCookie(c)
	if refresh == "" {
		var req dto.RefreshTokenRequest
		_ = c.BodyParser(&req)
		refresh = req.RefreshToken
	}
	if err := ac.Service.Logout(c.UserContext(), helper.GetRawAccessToken(c), refresh); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Logout failed")
	}
	ac.clearTokenCookies(c)
	return helper.JsonOK(c, "Logout successful", nil)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	refresh := helper.GetRefreshTokenFromCookie(c)
	if refresh != "" {
		if err := helper.CheckCSRFCookieHeader(c); err != nil {
			return err
		}
	} else {
		var req dto.RefreshTokenRequest
		_ = c.BodyParser(&req)
		refresh = req.RefreshToken
	}
	res, err := ac.Service.Refresh(c.UserContext(), refresh, clientInfo(c))
	if err != nil {
		return err
	}
	csrf := ac.setTokenCookies(c, res.Tokens)
	return helper.JsonOK(c, "Token refreshed", loginPayload(res, csrf))
}
