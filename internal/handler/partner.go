package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/showdesk/internal/adapter"
	"github.com/evergreenmedia/showdesk/internal/config"
	"github.com/evergreenmedia/showdesk/internal/middleware"
	"github.com/evergreenmedia/showdesk/internal/model"
	"github.com/evergreenmedia/showdesk/internal/repository"
)

// PartnerHandler serves partner-account management and the partner-scoped
// show listings. All mutating routes are admin only; the router enforces it.
type PartnerHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Shows *repository.ShowRepo
}

func NewPartnerHandler(cfg config.Config, u *repository.UserRepo, s *repository.ShowRepo) *PartnerHandler {
	return &PartnerHandler{Cfg: cfg, Users: u, Shows: s}
}

// Create handles POST /partners: a new partner account.
func (h *PartnerHandler) Create(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if name == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "name and email are required"})
	}
	if len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "password must be at least 8 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Users.Create(ctx, name, email, body.Password, model.RolePartner, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "could not create partner"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": name, "email": email, "role": string(model.RolePartner)})
}

// UpdatePassword handles PUT /partners/:id/password.
func (h *PartnerHandler) UpdatePassword(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request body"})
	}
	if len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "password must be at least 8 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, c.Param("id"), body.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "could not update password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "password updated"})
}

// DeleteUser handles DELETE /users/:id. Show-partner links for the account
// are removed in the same transaction; an admin cannot delete themselves.
func (h *PartnerHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if id == middleware.UserID(c) {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "cannot delete the calling account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "could not delete user"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Attach handles POST /podcasts/:id/partners/:partnerId and grants the
// partner account view access to the show. Attaching twice is a no-op.
func (h *PartnerHandler) Attach(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	showID := c.Param("id")
	partnerID := c.Param("partnerId")

	if _, err := h.Shows.GetByID(ctx, showID); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load show"})
	}
	u, err := h.Users.GetByID(ctx, partnerID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load user"})
	}
	if u.Role != model.RolePartner {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "user is not a partner account"})
	}
	if err := h.Shows.AddPartner(ctx, showID, partnerID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "could not attach partner"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "partner attached"})
}

// Detach handles DELETE /podcasts/:id/partners/:partnerId.
func (h *PartnerHandler) Detach(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Shows.RemovePartner(ctx, c.Param("id"), c.Param("partnerId")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "could not detach partner"})
	}
	return c.NoContent(http.StatusNoContent)
}

// MyShows handles GET /partners/me/podcasts: the caller's own show list.
func (h *PartnerHandler) MyShows(c echo.Context) error {
	return h.showsForPartner(c, middleware.UserID(c))
}

// ShowsFor handles GET /partners/:id/podcasts (admin only).
func (h *PartnerHandler) ShowsFor(c echo.Context) error {
	return h.showsForPartner(c, c.Param("id"))
}

func (h *PartnerHandler) showsForPartner(c echo.Context, userID string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	shows, err := h.Shows.ListForPartner(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load shows"})
	}
	out := make([]adapter.ShowWire, 0, len(shows))
	for _, s := range shows {
		out = append(out, adapter.ToWire(s))
	}
	return c.JSON(http.StatusOK, out)
}
