package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/utils"
)

// AuthHandler issues admin access tokens.  There is a single admin whose
// email and bcrypt password hash come from the configuration.
type AuthHandler struct {
	Secret       string
	TTL          time.Duration
	AdminEmail   string
	PasswordHash string
}

// NewAuthHandler wires an AuthHandler.
func NewAuthHandler(secret string, ttl time.Duration, adminEmail, passwordHash string) *AuthHandler {
	return &AuthHandler{
		Secret:       secret,
		TTL:          ttl,
		AdminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		PasswordHash: passwordHash,
	}
}

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.AdminEmail)) == 1
	// always run bcrypt so timing does not reveal the admin email
	passOK := utils.VerifyPassword(h.PasswordHash, req.Password)
	if !emailOK || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Secret, h.AdminEmail, middleware.RoleAdmin, h.TTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":   echo.Map{"email": h.AdminEmail, "role": middleware.RoleAdmin},
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
