package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/showdesk/internal/config"
	"github.com/evergreenmedia/showdesk/internal/middleware"
	"github.com/evergreenmedia/showdesk/internal/repository"
	"github.com/evergreenmedia/showdesk/internal/utils"
)

// AuthHandler bundles dependencies for the login and profile endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// tokenResp matches the shape the dashboard expects from POST /login.
type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResp is the profile shape returned by /users/me. The password hash
// never leaves the service.
type userResp struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// Login exchanges form-encoded credentials for a bearer token. The field
// is called "username" but carries the account email.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "username and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "issue token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: access.Token, TokenType: "bearer"})
}

// Me returns the authenticated user's profile. A token whose user row has
// been deleted reads as unauthorized, which the dashboard treats as a
// silent logout.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unknown user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "query failed"})
	}
	return c.JSON(http.StatusOK, userResp{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	})
}
