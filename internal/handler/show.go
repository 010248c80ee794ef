package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/showdesk/internal/adapter"
	"github.com/evergreenmedia/showdesk/internal/middleware"
	"github.com/evergreenmedia/showdesk/internal/model"
	"github.com/evergreenmedia/showdesk/internal/queue"
	"github.com/evergreenmedia/showdesk/internal/repository"
	queue_publisher "github.com/evergreenmedia/showdesk/internal/service"
)

const dbTimeout = 5 * time.Second

// ShowHandler serves the show CRUD and filter endpoints.
type ShowHandler struct {
	Shows *repository.ShowRepo
}

func NewShowHandler(s *repository.ShowRepo) *ShowHandler {
	return &ShowHandler{Shows: s}
}

// List handles GET /podcasts. Admins see every show; partners see only the
// shows whose partner set contains them. The scoping happens in SQL, not in
// the response shaping.
func (h *ShowHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var (
		shows []model.Show
		err   error
	)
	if middleware.Role(c) == string(model.RoleAdmin) {
		shows, err = h.Shows.ListAll(ctx)
	} else {
		shows, err = h.Shows.ListForPartner(ctx, middleware.UserID(c))
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load shows"})
	}
	return c.JSON(http.StatusOK, toWireList(shows))
}

// Filter handles GET /podcasts/filter: a conjunction of optional equality
// criteria evaluated in SQL. Partners get the same conjunction restricted to
// their own shows afterwards.
func (h *ShowHandler) Filter(c echo.Context) error {
	fq := repository.FilterQuery{}
	if v := c.QueryParam("title"); v != "" {
		fq.Title = &v
	}
	if v := c.QueryParam("media_type"); v != "" {
		mt := mediaTypeParam(v)
		fq.MediaType = &mt
	}
	if v := c.QueryParam("tentpole"); v != "" {
		b := v == "true"
		fq.Tentpole = &b
	}
	if v := c.QueryParam("relationship_level"); v != "" {
		rl := relationshipParam(v)
		fq.RelationshipLevel = &rl
	}
	if v := c.QueryParam("show_type"); v != "" {
		fq.ShowType = &v
	}
	if v := c.QueryParam("has_sponsorship_revenue"); v != "" {
		b := v == "true"
		fq.HasSponsorshipRevenue = &b
	}
	if v := c.QueryParam("has_non_evergreen_revenue"); v != "" {
		b := v == "true"
		fq.HasNonEvergreenRevenue = &b
	}
	if v := c.QueryParam("requires_partner_access"); v != "" {
		b := v == "true"
		fq.RequiresPartnerAccess = &b
	}
	if v := c.QueryParam("is_original"); v != "" {
		b := v == "true"
		fq.IsOriginal = &b
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	shows, err := h.Shows.Filter(ctx, fq)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to filter shows"})
	}
	if middleware.Role(c) != string(model.RoleAdmin) {
		uid := middleware.UserID(c)
		scoped := shows[:0]
		for _, s := range shows {
			if s.HasPartner(uid) {
				scoped = append(scoped, s)
			}
		}
		shows = scoped
	}
	return c.JSON(http.StatusOK, toWireList(shows))
}

// Get handles GET /podcasts/:id. Partners may only read shows they are
// attached to; other shows read as not found rather than forbidden so the
// ID space is not probeable.
func (h *ShowHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Shows.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load show"})
	}
	if middleware.Role(c) != string(model.RoleAdmin) && !s.HasPartner(middleware.UserID(c)) {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "show not found"})
	}
	return c.JSON(http.StatusOK, adapter.ToWire(*s))
}

// Create handles POST /podcasts (admin only; the router enforces the role).
func (h *ShowHandler) Create(c echo.Context) error {
	var w adapter.ShowWire
	if err := c.Bind(&w); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request body"})
	}
	s := adapter.FromWire(w)
	s.Name = strings.TrimSpace(s.Name)
	if msg := validateShow(&s); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Shows.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "could not create show"})
	}
	publishShowChange(c, "created", &s)

	fresh, err := h.Shows.GetByID(ctx, s.ID)
	if err != nil {
		// fallback: return the in-memory record even if re-read fails
		return c.JSON(http.StatusCreated, adapter.ToWire(s))
	}
	return c.JSON(http.StatusCreated, adapter.ToWire(*fresh))
}

// Update handles PUT /podcasts/:id (admin only). The body is a partial
// record: only fields present in the JSON overwrite the stored values.
func (h *ShowHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cur, err := h.Shows.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load show"})
	}

	var p adapter.ShowPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request body"})
	}
	p.Apply(cur)
	cur.Name = strings.TrimSpace(cur.Name)
	if msg := validateShow(cur); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": msg})
	}

	if err := h.Shows.Update(ctx, cur); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "update failed"})
	}
	publishShowChange(c, "updated", cur)

	fresh, err := h.Shows.GetByID(ctx, cur.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load show"})
	}
	return c.JSON(http.StatusOK, adapter.ToWire(*fresh))
}

// Delete handles DELETE /podcasts/:id (admin only). Partner links and
// annual revenue rows go with the show; ledger entries stay on the books.
func (h *ShowHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cur, err := h.Shows.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load show"})
	}
	if err := h.Shows.Delete(ctx, cur.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "delete failed"})
	}
	publishShowChange(c, "deleted", cur)
	return c.NoContent(http.StatusNoContent)
}

// validateShow enforces the record-level rules shared by create and update.
// It returns an empty string when the show is acceptable.
func validateShow(s *model.Show) string {
	if s.Name == "" {
		return "title is required"
	}
	if s.OwnershipPercentage < 0 || s.OwnershipPercentage > 100 {
		return "evergreen_ownership_pct must be between 0 and 100"
	}
	if s.Genre != "" && !model.ValidGenre(s.Genre) {
		return "unknown genre_id"
	}
	if s.AgeMonths < 0 {
		return "age_months must not be negative"
	}
	if s.ShowsPerYear < 0 {
		return "shows_per_year must not be negative"
	}
	if s.MinimumGuarantee < 0 || s.BrandedRevenueAmount < 0 ||
		s.MarketingRevenueAmount < 0 || s.WebManagementRevenue < 0 {
		return "revenue amounts must not be negative"
	}
	return ""
}

// publishShowChange emits the audit event for a mutation. Publishing is
// best-effort and runs off the request path; the publisher logs failures.
func publishShowChange(c echo.Context, action string, s *model.Show) {
	ev := queue.ShowChangedEvent{
		Action:     action,
		ShowID:     s.ID,
		Title:      s.Name,
		ShowType:   s.ShowType,
		Subnetwork: s.Subnetwork,
		ActorID:    middleware.UserID(c),
		ActorRole:  middleware.Role(c),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishShowChanged(ctx, ev)
	}()
}

func toWireList(shows []model.Show) []adapter.ShowWire {
	out := make([]adapter.ShowWire, 0, len(shows))
	for _, s := range shows {
		out = append(out, adapter.ToWire(s))
	}
	return out
}

// mediaTypeParam normalizes the lowercase wire value to the stored enum.
func mediaTypeParam(v string) model.Format {
	switch strings.ToLower(v) {
	case "video":
		return model.FormatVideo
	case "both":
		return model.FormatBoth
	default:
		return model.FormatAudio
	}
}

func relationshipParam(v string) model.Relationship {
	switch strings.ToLower(v) {
	case "strong":
		return model.RelationshipStrong
	case "weak":
		return model.RelationshipWeak
	default:
		return model.RelationshipMedium
	}
}
